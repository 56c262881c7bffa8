package builder

import (
	"gorm.io/datatypes"

	"github.com/apper-apps/agencyflowapi/internal/model"
)

// NewForm 新建空白表单草稿，设置已填充默认值
func NewForm() *model.Form {
	return &model.Form{
		Kind:     model.KindForm,
		Name:     model.DefaultFormName,
		Fields:   datatypes.JSONSlice[model.Field]{},
		Sections: datatypes.JSONSlice[model.Section]{},
		Settings: model.DefaultSettings(model.KindForm),
		IsActive: true,
	}
}

// NewTemplate 新建提案模板草稿，带封面、概述和报价三个章节
func NewTemplate() *model.Form {
	return &model.Form{
		Kind:        model.KindTemplate,
		Name:        model.DefaultTemplateName,
		Description: "",
		Category:    model.DefaultTemplateCategory,
		Fields:      datatypes.JSONSlice[model.Field]{},
		Sections: datatypes.JSONSlice[model.Section]{
			{ID: "cover", Name: "Cover Page", Type: model.SectionTypeCover, Required: true, Content: "Professional proposal cover with your branding", Order: 1},
			{ID: "overview", Name: "Project Overview", Type: model.SectionTypeContent, Required: true, Content: "Brief description of the project and objectives", Order: 2},
			{ID: "investment", Name: "Investment", Type: model.SectionTypePricing, Required: true, Content: "Detailed pricing breakdown and payment terms", Order: 3},
		},
		Branding:     model.DefaultBranding(),
		Settings:     model.DefaultSettings(model.KindTemplate),
		Placeholders: model.DefaultPlaceholders(),
		IsActive:     true,
	}
}

// NewDocument 按种类新建草稿
func NewDocument(kind model.Kind) *model.Form {
	if kind == model.KindTemplate {
		return NewTemplate()
	}
	return NewForm()
}
