package formkit

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/apper-apps/agencyflowapi/internal/model"
)

var (
	ErrUnknownFieldType   = errors.New("unknown field type")
	ErrUnknownSectionType = errors.New("unknown section type")
)

// defaultOptionCount 选择类字段创建时的占位选项数
const defaultOptionCount = 3

// Registry 字段 / 章节类型注册表，负责列出可选类型并创建默认定义
type Registry struct {
	ids IDSource
}

// NewRegistry 创建注册表
func NewRegistry(ids IDSource) *Registry {
	return &Registry{ids: ids}
}

// ListTypes 按面板顺序列出字段类型，group 为空时返回全部
func (r *Registry) ListTypes(group model.FieldGroup) []model.FieldKind {
	kinds := model.FieldKinds()
	if group == "" {
		return kinds
	}
	out := make([]model.FieldKind, 0, len(kinds))
	for _, k := range kinds {
		if k.Group == group {
			out = append(out, k)
		}
	}
	return out
}

// GroupedTypes 按分组返回字段类型，分组顺序固定
func (r *Registry) GroupedTypes() map[model.FieldGroup][]model.FieldKind {
	out := make(map[model.FieldGroup][]model.FieldKind, len(model.FieldGroups))
	for _, g := range model.FieldGroups {
		out[g] = r.ListTypes(g)
	}
	return out
}

// CreateDefault 创建指定类型的默认字段
func (r *Registry) CreateDefault(t model.FieldType) (model.Field, error) {
	kind, ok := model.LookupFieldKind(t)
	if !ok {
		return model.Field{}, fmt.Errorf("%w: %s", ErrUnknownFieldType, t)
	}

	field := model.Field{
		ID:    r.ids.NextID(),
		Type:  t,
		Label: titleCase(string(t)) + " Field",
		Props: kind.NewProps(),
	}
	if choice := field.Choice(); choice != nil {
		choice.Options = make([]string, 0, defaultOptionCount)
		for i := 1; i <= defaultOptionCount; i++ {
			choice.Options = append(choice.Options, fmt.Sprintf("Option %d", i))
		}
	}
	return field, nil
}

// ListSectionTypes 列出章节类型
func (r *Registry) ListSectionTypes() []model.SectionKind {
	return model.SectionKinds()
}

// CreateDefaultSection 创建指定类型的默认章节，order 从 1 开始
func (r *Registry) CreateDefaultSection(t model.SectionType, order int) (model.Section, error) {
	kind, ok := model.LookupSectionKind(t)
	if !ok {
		return model.Section{}, fmt.Errorf("%w: %s", ErrUnknownSectionType, t)
	}
	return model.Section{
		ID:      r.ids.NextID(),
		Name:    titleCase(string(t)) + " Section",
		Type:    t,
		Content: kind.DefaultContent,
		Order:   order,
	}, nil
}

// titleCase Caser 有状态，不能跨 goroutine 共享，每次新建
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
