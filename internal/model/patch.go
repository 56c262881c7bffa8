package model

import "slices"

// FieldPatch 字段的局部更新，nil 表示不修改。
// 与字段类型无关的属性在 Apply 时被丢弃。
type FieldPatch struct {
	Label       *string
	Placeholder *string
	HelpText    *string
	Required    *bool
	Options     *[]string
	// Min / Max 外层 nil 表示不修改，内层 nil 表示清空
	Min  **float64
	Max  **float64
	Rows *int
}

// IsZero 补丁是否为空
func (p FieldPatch) IsZero() bool {
	return p == FieldPatch{}
}

// Apply 返回应用补丁后的新字段，不修改入参
func (p FieldPatch) Apply(f Field) Field {
	out := f.Clone()
	if p.Label != nil {
		out.Label = *p.Label
	}
	if p.Placeholder != nil && out.HasPlaceholder() {
		out.Placeholder = *p.Placeholder
	}
	if p.HelpText != nil {
		out.HelpText = *p.HelpText
	}
	if p.Required != nil {
		out.Required = *p.Required
	}
	switch props := out.Props.(type) {
	case *ChoiceProps:
		if p.Options != nil {
			props.Options = slices.Clone(*p.Options)
			if props.Options == nil {
				props.Options = []string{}
			}
		}
	case *NumberProps:
		if p.Min != nil {
			props.Min = copyFloat(*p.Min)
		}
		if p.Max != nil {
			props.Max = copyFloat(*p.Max)
		}
	case *TextareaProps:
		if p.Rows != nil {
			props.Rows = *p.Rows
		}
	}
	return out
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// SectionPatch 章节的局部更新
type SectionPatch struct {
	Name     *string
	Type     *SectionType
	Content  *string
	Required *bool
}

// Apply 返回应用补丁后的新章节
func (p SectionPatch) Apply(s Section) Section {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.Content != nil {
		s.Content = *p.Content
	}
	if p.Required != nil {
		s.Required = *p.Required
	}
	return s
}

// SettingsPatch 设置的局部更新
type SettingsPatch struct {
	SubmitText       *string
	SuccessMessage   *string
	Theme            *Theme
	AllowMultiple    *bool
	AllowComments    *bool
	RequireSignature *bool
}

// Apply 返回应用补丁后的设置
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.SubmitText != nil {
		s.SubmitText = *p.SubmitText
	}
	if p.SuccessMessage != nil {
		s.SuccessMessage = *p.SuccessMessage
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.AllowMultiple != nil {
		s.AllowMultiple = *p.AllowMultiple
	}
	if p.AllowComments != nil {
		s.AllowComments = *p.AllowComments
	}
	if p.RequireSignature != nil {
		s.RequireSignature = *p.RequireSignature
	}
	return s
}

// BrandingPatch 品牌设置的局部更新
type BrandingPatch struct {
	PrimaryColor   *string
	SecondaryColor *string
	FontFamily     *string
	LogoPosition   *string
	Logo           *string
	Letterhead     *bool
}

// Apply 返回应用补丁后的品牌设置
func (p BrandingPatch) Apply(b Branding) Branding {
	if p.PrimaryColor != nil {
		b.PrimaryColor = *p.PrimaryColor
	}
	if p.SecondaryColor != nil {
		b.SecondaryColor = *p.SecondaryColor
	}
	if p.FontFamily != nil {
		b.FontFamily = *p.FontFamily
	}
	if p.LogoPosition != nil {
		b.LogoPosition = *p.LogoPosition
	}
	if p.Logo != nil {
		b.Logo = *p.Logo
	}
	if p.Letterhead != nil {
		b.Letterhead = *p.Letterhead
	}
	return b
}
