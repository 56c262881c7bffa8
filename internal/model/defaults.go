package model

// 默认值集中在这里，渲染层可以假定设置已填充完整
const (
	DefaultSubmitText        = "Submit"
	DefaultSuccessMessage    = "Thank you for your submission!"
	DefaultPrimaryColor      = "#4F46E5"
	DefaultSecondaryColor    = "#7C3AED"
	DefaultFontFamily        = "Inter"
	DefaultLogoPosition      = "top-left"
	TemplateSubmitText       = "Accept Proposal"
	TemplateSuccessMessage   = "Thank you! We'll be in touch soon."
	DefaultFormName          = "Untitled Form"
	DefaultTemplateName      = "Untitled Proposal Template"
	DefaultTemplateCategory  = CategoryConsulting
	DefaultPreviewSuccessMsg = "Form submitted successfully!"
)

// DefaultSettings 按文档种类返回默认设置
func DefaultSettings(kind Kind) Settings {
	if kind == KindTemplate {
		return Settings{
			SubmitText:       TemplateSubmitText,
			SuccessMessage:   TemplateSuccessMessage,
			Theme:            ThemeProfessional,
			AllowComments:    true,
			RequireSignature: true,
		}
	}
	return Settings{
		SubmitText:     DefaultSubmitText,
		SuccessMessage: DefaultSuccessMessage,
		Theme:          ThemeDefault,
		AllowMultiple:  true,
	}
}

// DefaultBranding 默认品牌设置
func DefaultBranding() Branding {
	return Branding{
		PrimaryColor:   DefaultPrimaryColor,
		SecondaryColor: DefaultSecondaryColor,
		FontFamily:     DefaultFontFamily,
		LogoPosition:   DefaultLogoPosition,
		Letterhead:     true,
	}
}

// DefaultPlaceholders 模板内容占位符
func DefaultPlaceholders() map[string]string {
	return map[string]string{
		"clientName":     "[CLIENT_NAME]",
		"companyName":    "[COMPANY_NAME]",
		"projectName":    "[PROJECT_NAME]",
		"date":           "[DATE]",
		"proposalNumber": "[PROPOSAL_NUMBER]",
		"totalAmount":    "[TOTAL_AMOUNT]",
	}
}

// WithDefaults 补齐空缺的设置项
func (s Settings) WithDefaults(kind Kind) Settings {
	d := DefaultSettings(kind)
	if s == (Settings{}) {
		return d
	}
	if s.SubmitText == "" {
		s.SubmitText = d.SubmitText
	}
	if s.SuccessMessage == "" {
		s.SuccessMessage = d.SuccessMessage
	}
	if s.Theme == "" {
		s.Theme = d.Theme
	}
	return s
}

// WithDefaults 补齐空缺的品牌项；Letterhead 只在整体为空时取默认
func (b Branding) WithDefaults() Branding {
	d := DefaultBranding()
	if b == (Branding{}) {
		return d
	}
	if b.PrimaryColor == "" {
		b.PrimaryColor = d.PrimaryColor
	}
	if b.SecondaryColor == "" {
		b.SecondaryColor = d.SecondaryColor
	}
	if b.FontFamily == "" {
		b.FontFamily = d.FontFamily
	}
	if b.LogoPosition == "" {
		b.LogoPosition = d.LogoPosition
	}
	return b
}
