package model

// Status 列表按启用状态筛选
type Status string

const (
	StatusAll      Status = "all"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// IsValid 空值按全部处理
func (s Status) IsValid() bool {
	switch s {
	case "", StatusAll, StatusActive, StatusInactive:
		return true
	}
	return false
}

// FormFilter 文档列表的筛选条件，零值返回全部文档
type FormFilter struct {
	Kind Kind
	// Query 在名称和描述中匹配，不区分大小写
	Query  string
	Status Status
}
