package model

import (
	"time"

	"gorm.io/datatypes"
)

// Submission 表单提交记录
type Submission struct {
	ID          string            `json:"id" gorm:"primaryKey;size:36"` // UUID
	FormID      uint              `json:"formId" gorm:"index;not null"`
	Data        datatypes.JSONMap `json:"data"`
	IPAddress   string            `json:"ipAddress" gorm:"size:64"`
	UserAgent   string            `json:"userAgent" gorm:"size:500"`
	SubmittedAt time.Time         `json:"submittedAt" gorm:"index"`
}

// TableName 指定表名
func (Submission) TableName() string {
	return "form_submissions"
}
