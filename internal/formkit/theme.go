package formkit

import "github.com/apper-apps/agencyflowapi/internal/model"

// ThemeRules 主题对预览布局和字体的样式规则
type ThemeRules struct {
	Container string `json:"container"`
	Field     string `json:"field"`
	Label     string `json:"label"`
	Input     string `json:"input"`
}

var themes = map[model.Theme]ThemeRules{
	model.ThemeDefault: {
		Container: "space-y-6",
		Field:     "",
		Label:     "text-sm font-medium text-gray-700",
		Input:     BaseInputClass,
	},
	model.ThemeMinimal: {
		Container: "space-y-4",
		Field:     "border-b border-gray-200 pb-2",
		Label:     "text-sm text-gray-600",
		Input:     "w-full px-0 py-2 text-sm border-none border-b border-gray-200 rounded-none focus:ring-0 focus:border-gray-400",
	},
	model.ThemeModern: {
		Container: "space-y-6",
		Field:     "bg-gray-50 p-4 rounded-xl",
		Label:     "text-sm font-medium text-gray-800",
		Input:     "w-full px-3 py-2 text-sm rounded-lg bg-transparent border-2 border-gray-200 focus:border-primary-400",
	},
	model.ThemeProfessional: {
		Container: "space-y-5",
		Field:     "border border-gray-200 p-4 rounded-lg bg-white shadow-sm",
		Label:     "text-sm font-semibold text-gray-700 uppercase tracking-wide",
		Input:     "w-full px-3 py-2 text-sm rounded-md border border-gray-300 focus:border-primary-500 shadow-sm",
	},
	model.ThemeElegant: {
		Container: "space-y-8 font-serif",
		Field:     "border-l-2 border-secondary-300 pl-4",
		Label:     "text-base italic text-gray-800 tracking-tight",
		Input:     "w-full px-3 py-2 text-sm font-serif bg-white border border-gray-200 rounded-sm focus:border-secondary-500 focus:ring-1 focus:ring-secondary-200",
	},
}

// ResolveTheme 主题名到样式规则，未知主题回退到 default
func ResolveTheme(name model.Theme) ThemeRules {
	if rules, ok := themes[name]; ok {
		return rules
	}
	return themes[model.ThemeDefault]
}
