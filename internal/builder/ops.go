package builder

import (
	"errors"
	"fmt"
	"slices"

	"github.com/apper-apps/agencyflowapi/internal/domain"
	"github.com/apper-apps/agencyflowapi/internal/model"
)

var (
	ErrFieldNotFound   = errors.New("field not found")
	ErrSectionNotFound = errors.New("section not found")
	ErrIndexOutOfRange = errors.New("index out of range")
)

func fieldNotFound(id string) error {
	return &domain.NotFoundError{Resource: "Field", ID: id, Err: ErrFieldNotFound}
}

func sectionNotFound(id string) error {
	return &domain.NotFoundError{Resource: "Section", ID: id, Err: ErrSectionNotFound}
}

func outOfRange(from, to, n int) error {
	return &domain.ValidationError{
		Message: fmt.Sprintf("cannot move %d to %d of %d", from, to, n),
		Err:     ErrIndexOutOfRange,
	}
}

// 以下操作都不修改入参，返回更新后的新文档

// AddField 在末尾追加字段
func AddField(doc *model.Form, f model.Field) *model.Form {
	out := doc.Clone()
	out.Fields = append(out.Fields, f.Clone())
	return out
}

// UpdateField 按 id 应用字段补丁
func UpdateField(doc *model.Form, id string, patch model.FieldPatch) (*model.Form, error) {
	i := doc.FieldByID(id)
	if i < 0 {
		return nil, fieldNotFound(id)
	}
	out := doc.Clone()
	out.Fields[i] = patch.Apply(out.Fields[i])
	return out, nil
}

// RemoveField 按 id 删除字段
func RemoveField(doc *model.Form, id string) (*model.Form, error) {
	i := doc.FieldByID(id)
	if i < 0 {
		return nil, fieldNotFound(id)
	}
	out := doc.Clone()
	out.Fields = slices.Delete(out.Fields, i, i+1)
	return out, nil
}

// Reorder 把 from 位置的字段移动到 to 位置，字段本身不变
func Reorder(doc *model.Form, from, to int) (*model.Form, error) {
	n := len(doc.Fields)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, outOfRange(from, to, n)
	}
	out := doc.Clone()
	out.Fields = move(out.Fields, from, to)
	return out, nil
}

func move[S ~[]E, E any](list S, from, to int) S {
	item := list[from]
	list = slices.Delete(list, from, from+1)
	return slices.Insert(list, to, item)
}

// UpdateSettings 应用设置补丁
func UpdateSettings(doc *model.Form, patch model.SettingsPatch) *model.Form {
	out := doc.Clone()
	out.Settings = patch.Apply(out.Settings)
	return out
}

// UpdateBranding 应用品牌补丁
func UpdateBranding(doc *model.Form, patch model.BrandingPatch) *model.Form {
	out := doc.Clone()
	out.Branding = patch.Apply(out.Branding)
	return out
}

// UpdateDocument 对副本执行任意更新函数
func UpdateDocument(doc *model.Form, update func(*model.Form)) *model.Form {
	out := doc.Clone()
	update(out)
	return out
}

// SetPlaceholder 设置一个内容占位符
func SetPlaceholder(doc *model.Form, token, value string) *model.Form {
	out := doc.Clone()
	if out.Placeholders == nil {
		out.Placeholders = map[string]string{}
	}
	out.Placeholders[token] = value
	return out
}

// AddSection 追加章节，order 取追加后的位置
func AddSection(doc *model.Form, s model.Section) *model.Form {
	out := doc.Clone()
	s.Order = len(out.Sections) + 1
	out.Sections = append(out.Sections, s)
	return out
}

// UpdateSection 按 id 应用章节补丁
func UpdateSection(doc *model.Form, id string, patch model.SectionPatch) (*model.Form, error) {
	i := doc.SectionByID(id)
	if i < 0 {
		return nil, sectionNotFound(id)
	}
	out := doc.Clone()
	out.Sections[i] = patch.Apply(out.Sections[i])
	return out, nil
}

// RemoveSection 按 id 删除章节，剩余章节重新编号
func RemoveSection(doc *model.Form, id string) (*model.Form, error) {
	i := doc.SectionByID(id)
	if i < 0 {
		return nil, sectionNotFound(id)
	}
	out := doc.Clone()
	out.Sections = slices.Delete(out.Sections, i, i+1)
	renumber(out.Sections)
	return out, nil
}

// ReorderSections 移动章节并把 order 重排为 1..n
func ReorderSections(doc *model.Form, from, to int) (*model.Form, error) {
	n := len(doc.Sections)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, outOfRange(from, to, n)
	}
	out := doc.Clone()
	out.Sections = move(out.Sections, from, to)
	renumber(out.Sections)
	return out, nil
}

func renumber(sections []model.Section) {
	for i := range sections {
		sections[i].Order = i + 1
	}
}
