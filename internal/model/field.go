package model

import (
	"encoding/json"
	"slices"
)

// FieldType 表单字段类型
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeEmail    FieldType = "email"
	FieldTypePhone    FieldType = "phone"
	FieldTypeNumber   FieldType = "number"
	FieldTypeSelect   FieldType = "select"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeDate     FieldType = "date"
)

// DefaultTextareaRows 多行文本默认行数
const DefaultTextareaRows = 3

// FieldProps 字段类型专属属性，只能是下面几种实现之一
type FieldProps interface {
	fieldProps()
}

// ChoiceProps select / radio / checkbox 的选项
type ChoiceProps struct {
	Options []string
}

// NumberProps number 字段的取值范围
type NumberProps struct {
	Min *float64
	Max *float64
}

// TextareaProps textarea 的行数，0 表示未设置
type TextareaProps struct {
	Rows int
}

func (*ChoiceProps) fieldProps()   {}
func (*NumberProps) fieldProps()   {}
func (*TextareaProps) fieldProps() {}

// Field 单个表单字段定义
type Field struct {
	ID          string
	Type        FieldType
	Label       string
	Placeholder string
	HelpText    string
	Required    bool
	// Props 由 Type 决定，未知类型为 nil
	Props FieldProps
}

// fieldWire 字段的 JSON 形态，类型专属属性平铺
type fieldWire struct {
	ID          string    `json:"id"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label"`
	Placeholder string    `json:"placeholder,omitempty"`
	HelpText    string    `json:"helpText,omitempty"`
	Required    bool      `json:"required"`
	Options     *[]string `json:"options,omitempty"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
	Rows        *int      `json:"rows,omitempty"`
}

// Choice 返回选项属性，非选择类字段返回 nil
func (f Field) Choice() *ChoiceProps {
	p, _ := f.Props.(*ChoiceProps)
	return p
}

// Number 返回数值范围属性，非 number 字段返回 nil
func (f Field) Number() *NumberProps {
	p, _ := f.Props.(*NumberProps)
	return p
}

// Textarea 返回多行文本属性，非 textarea 字段返回 nil
func (f Field) Textarea() *TextareaProps {
	p, _ := f.Props.(*TextareaProps)
	return p
}

// Options 返回选项列表；第二个返回值表示该类型是否支持选项
func (f Field) Options() ([]string, bool) {
	if c := f.Choice(); c != nil {
		return c.Options, true
	}
	return nil, false
}

// Rows 返回生效的行数
func (f Field) Rows() int {
	if t := f.Textarea(); t != nil && t.Rows > 0 {
		return t.Rows
	}
	return DefaultTextareaRows
}

// HasPlaceholder 该类型是否有单一占位文本
func (f Field) HasPlaceholder() bool {
	kind, ok := LookupFieldKind(f.Type)
	return ok && kind.Placeholder
}

// Clone 深拷贝字段
func (f Field) Clone() Field {
	switch p := f.Props.(type) {
	case *ChoiceProps:
		f.Props = &ChoiceProps{Options: slices.Clone(p.Options)}
	case *NumberProps:
		n := &NumberProps{}
		if p.Min != nil {
			v := *p.Min
			n.Min = &v
		}
		if p.Max != nil {
			v := *p.Max
			n.Max = &v
		}
		f.Props = n
	case *TextareaProps:
		f.Props = &TextareaProps{Rows: p.Rows}
	}
	return f
}

// MarshalJSON 只输出与类型相关的属性
func (f Field) MarshalJSON() ([]byte, error) {
	w := fieldWire{
		ID:          f.ID,
		Type:        f.Type,
		Label:       f.Label,
		Placeholder: f.Placeholder,
		HelpText:    f.HelpText,
		Required:    f.Required,
	}
	if !f.HasPlaceholder() {
		w.Placeholder = ""
	}
	switch p := f.Props.(type) {
	case *ChoiceProps:
		opts := p.Options
		if opts == nil {
			opts = []string{}
		}
		w.Options = &opts
	case *NumberProps:
		w.Min, w.Max = p.Min, p.Max
	case *TextareaProps:
		if p.Rows > 0 {
			rows := p.Rows
			w.Rows = &rows
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON 按类型重建专属属性，丢弃无关属性
func (f *Field) UnmarshalJSON(data []byte) error {
	var w fieldWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*f = Field{
		ID:          w.ID,
		Type:        w.Type,
		Label:       w.Label,
		Placeholder: w.Placeholder,
		HelpText:    w.HelpText,
		Required:    w.Required,
		Props:       NewFieldProps(w.Type),
	}
	if !f.HasPlaceholder() {
		f.Placeholder = ""
	}
	switch p := f.Props.(type) {
	case *ChoiceProps:
		if w.Options != nil {
			p.Options = slices.Clone(*w.Options)
		}
	case *NumberProps:
		p.Min, p.Max = w.Min, w.Max
	case *TextareaProps:
		if w.Rows != nil {
			p.Rows = *w.Rows
		}
	}
	return nil
}
