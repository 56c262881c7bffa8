package formkit

import (
	"golang.org/x/net/html/atom"

	"github.com/apper-apps/agencyflowapi/internal/model"
)

// Palette 按分组渲染字段面板，每项是一个添加字段的按钮
func Palette(reg *Registry, act Actions) Node {
	root := el(atom.Div, attrs("id", "palette", "class", "space-y-3"))
	for i, group := range model.FieldGroups {
		class := "text-xs uppercase tracking-wide font-semibold text-gray-500 mb-3"
		if i > 0 {
			class += " mt-6"
		}
		root.AppendChild(el(atom.Div, attrs("class", class, "data-group", string(group)), text(string(group)+" Fields")))
		for _, kind := range reg.ListTypes(group) {
			root.AppendChild(paletteItem(kind, act))
		}
	}
	root.AppendChild(el(atom.Div, attrs("class", "mt-6 p-3 bg-blue-50 rounded-lg border border-blue-200"),
		el(atom.P, attrs("class", "text-xs text-blue-700 font-medium"), text("Pro Tip")),
		el(atom.P, attrs("class", "text-xs text-blue-600 mt-1"), text("Click or drag fields to add them to your form. Customize each field in the settings panel.")),
	))
	return root
}

func paletteItem(kind model.FieldKind, act Actions) Node {
	return el(atom.Form, attrs("method", "post", "action", act.To("fields")),
		el(atom.Input, attrs("type", "hidden", "name", "type", "value", string(kind.Type))),
		el(atom.Button, attrs("type", "submit", "class", "w-full text-left p-3 border border-gray-200 rounded-lg bg-white hover:bg-gray-50 hover:border-primary-300", "data-type", string(kind.Type), "data-icon", kind.Icon),
			el(atom.Span, attrs("class", "block text-sm font-medium text-gray-900"), text(kind.Label)),
			el(atom.Span, attrs("class", "block text-xs text-gray-500 mt-1"), text(kind.Description)),
		),
	)
}

// SectionPalette 模板模式的章节添加下拉框
func SectionPalette(reg *Registry, act Actions) Node {
	options := []Node{el(atom.Option, attrs("value", ""), text("Add Section..."))}
	for _, kind := range reg.ListSectionTypes() {
		options = append(options, el(atom.Option, attrs("value", string(kind.Type), "data-group", string(kind.Group)), text(kind.Label)))
	}
	return el(atom.Form, attrs("id", "palette", "method", "post", "action", act.To("sections"), "class", "p-4 border-b border-gray-200"),
		el(atom.Select, attrs("name", "type", "class", BaseInputClass, "required", ""), options...),
		el(atom.Button, attrs("type", "submit", "class", "btn btn-primary mt-2"), text("Add")),
	)
}
