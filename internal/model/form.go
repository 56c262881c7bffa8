package model

import (
	"time"

	"gorm.io/datatypes"
)

// Kind 文档种类：普通表单或提案模板
type Kind string

const (
	KindForm     Kind = "form"
	KindTemplate Kind = "template"
)

// Category 提案模板分类
type Category string

const (
	CategoryWebDesign   Category = "web-design"
	CategoryMarketing   Category = "marketing"
	CategoryConsulting  Category = "consulting"
	CategoryDevelopment Category = "development"
	CategoryBranding    Category = "branding"
	CategorySEO         Category = "seo"
)

// CategoryInfo 分类的展示信息
type CategoryInfo struct {
	ID   Category `json:"id"`
	Name string   `json:"name"`
	Icon string   `json:"icon"`
}

// Categories 模板分类，按模板库顺序
var Categories = []CategoryInfo{
	{ID: CategoryWebDesign, Name: "Web Design", Icon: "Monitor"},
	{ID: CategoryMarketing, Name: "Marketing", Icon: "TrendingUp"},
	{ID: CategoryConsulting, Name: "Consulting", Icon: "Users"},
	{ID: CategoryDevelopment, Name: "Development", Icon: "Code"},
	{ID: CategoryBranding, Name: "Branding", Icon: "Palette"},
	{ID: CategorySEO, Name: "SEO Services", Icon: "Search"},
}

// IsValidCategory 是否为已知分类
func IsValidCategory(c Category) bool {
	for _, info := range Categories {
		if info.ID == c {
			return true
		}
	}
	return false
}

// Theme 预览主题名称
type Theme string

const (
	ThemeDefault      Theme = "default"
	ThemeMinimal      Theme = "minimal"
	ThemeModern       Theme = "modern"
	ThemeProfessional Theme = "professional"
	ThemeElegant      Theme = "elegant"
)

// Themes 全部主题，按编辑器下拉框顺序
var Themes = []Theme{ThemeDefault, ThemeMinimal, ThemeModern, ThemeProfessional, ThemeElegant}

// Branding 模板品牌设置
type Branding struct {
	PrimaryColor   string `json:"primaryColor,omitempty" validate:"omitempty,hexcolor"`
	SecondaryColor string `json:"secondaryColor,omitempty" validate:"omitempty,hexcolor"`
	FontFamily     string `json:"fontFamily,omitempty" validate:"max=100"`
	LogoPosition   string `json:"logoPosition,omitempty" validate:"omitempty,oneof=top-left top-right center"`
	Logo           string `json:"logo,omitempty"`
	Letterhead     bool   `json:"letterhead"`
}

// Settings 表单/模板的提交与展示设置
type Settings struct {
	SubmitText       string `json:"submitText"`
	SuccessMessage   string `json:"successMessage"`
	Theme            Theme  `json:"theme" validate:"omitempty,oneof=default minimal modern professional elegant"`
	AllowMultiple    bool   `json:"allowMultiple"`
	AllowComments    bool   `json:"allowComments,omitempty"`
	RequireSignature bool   `json:"requireSignature,omitempty"`
}

// Form 表单或提案模板文档
type Form struct {
	ID           uint                         `json:"id" gorm:"primaryKey"`
	Kind         Kind                         `json:"kind" gorm:"size:20;not null;default:'form';index" validate:"oneof=form template"`
	Name         string                       `json:"name" gorm:"size:255;not null" validate:"required,max=255"`
	Description  string                       `json:"description" gorm:"size:1000" validate:"max=1000"`
	Category     Category                     `json:"category,omitempty" gorm:"size:50" validate:"omitempty,oneof=web-design marketing consulting development branding seo"`
	Fields       datatypes.JSONSlice[Field]   `json:"fields"`
	Sections     datatypes.JSONSlice[Section] `json:"sections" validate:"dive"`
	Branding     Branding                     `json:"branding" gorm:"serializer:json"`
	Settings     Settings                     `json:"settings" gorm:"serializer:json"`
	Placeholders map[string]string            `json:"placeholders,omitempty" gorm:"serializer:json"`
	Submissions  int                          `json:"submissions" gorm:"default:0"`
	IsActive     bool                         `json:"isActive"`
	CreatedAt    time.Time                    `json:"createdAt"`
	UpdatedAt    time.Time                    `json:"updatedAt"`
}

// TableName 指定表名
func (Form) TableName() string {
	return "forms"
}

// IsTemplate 是否为提案模板
func (f *Form) IsTemplate() bool {
	return f.Kind == KindTemplate
}

// IsEmpty 既没有字段也没有章节
func (f *Form) IsEmpty() bool {
	return len(f.Fields) == 0 && len(f.Sections) == 0
}

// FieldByID 按 id 查找字段下标，找不到返回 -1
func (f *Form) FieldByID(id string) int {
	for i, field := range f.Fields {
		if field.ID == id {
			return i
		}
	}
	return -1
}

// SectionByID 按 id 查找章节下标，找不到返回 -1
func (f *Form) SectionByID(id string) int {
	for i, s := range f.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Clone 深拷贝文档，builder 的纯更新操作基于它
func (f *Form) Clone() *Form {
	out := *f
	if f.Fields != nil {
		out.Fields = make(datatypes.JSONSlice[Field], len(f.Fields))
		for i, field := range f.Fields {
			out.Fields[i] = field.Clone()
		}
	}
	if f.Sections != nil {
		out.Sections = make(datatypes.JSONSlice[Section], len(f.Sections))
		copy(out.Sections, f.Sections)
	}
	if f.Placeholders != nil {
		out.Placeholders = make(map[string]string, len(f.Placeholders))
		for k, v := range f.Placeholders {
			out.Placeholders[k] = v
		}
	}
	return &out
}
