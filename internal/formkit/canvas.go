package formkit

import (
	"strconv"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/apper-apps/agencyflowapi/internal/model"
)

// Actions 渲染出的表单提交地址，Base 形如 /builder/drafts/<token>
type Actions struct {
	Base string
}

// To 拼接动作地址
func (a Actions) To(parts ...string) string {
	if len(parts) == 0 {
		return a.Base
	}
	return a.Base + "/" + strings.Join(parts, "/")
}

// CanvasItem 画布上一个条目的渲染状态
type CanvasItem struct {
	ID          string
	Index       int
	Selected    bool
	CanMoveUp   bool
	CanMoveDown bool
}

// MoveBounds index 处能否上移 / 下移，越界时都为 false
func MoveBounds(index, n int) (up, down bool) {
	if index < 0 || index >= n {
		return false, false
	}
	return index > 0, index < n-1
}

// CanvasItems 计算每个字段的选中状态和移动边界
func CanvasItems(doc *model.Form, selectedID string) []CanvasItem {
	items := make([]CanvasItem, len(doc.Fields))
	for i, f := range doc.Fields {
		up, down := MoveBounds(i, len(doc.Fields))
		items[i] = CanvasItem{ID: f.ID, Index: i, Selected: f.ID == selectedID, CanMoveUp: up, CanMoveDown: down}
	}
	return items
}

// SectionItems 章节版本的 CanvasItems
func SectionItems(doc *model.Form, selectedID string) []CanvasItem {
	items := make([]CanvasItem, len(doc.Sections))
	for i, s := range doc.Sections {
		up, down := MoveBounds(i, len(doc.Sections))
		items[i] = CanvasItem{ID: s.ID, Index: i, Selected: s.ID == selectedID, CanMoveUp: up, CanMoveDown: down}
	}
	return items
}

// SubmitText 提交按钮文字，未设置时为默认值
func SubmitText(doc *model.Form) string {
	if doc.Settings.SubmitText != "" {
		return doc.Settings.SubmitText
	}
	return model.DefaultSubmitText
}

// Canvas 渲染表单模式的可编辑画布；选中状态由调用方持有
func Canvas(doc *model.Form, selectedID string, act Actions) Node {
	root := el(atom.Div, attrs("id", "canvas", "class", "min-h-96 rounded-lg border-2 border-dashed border-gray-300 bg-white"))
	if len(doc.Fields) == 0 {
		root.AppendChild(el(atom.Div, attrs("class", "flex items-center justify-center h-96"),
			el(atom.Div, attrs("class", "text-center"),
				el(atom.H3, attrs("class", "text-lg font-medium text-gray-900 mb-2"), text("Start Building Your Form")),
				el(atom.P, attrs("class", "text-gray-500 mb-4"), text("Drag form fields from the left panel to start creating your form")),
			),
		))
		return root
	}

	list := el(atom.Div, attrs("class", "space-y-4 mb-8"))
	for i, item := range CanvasItems(doc, selectedID) {
		list.AppendChild(canvasField(doc.Fields[i], item, act))
	}

	root.AppendChild(el(atom.Div, attrs("class", "p-6"),
		documentHeader(doc, "text-xl font-semibold text-gray-900 mb-2"),
		list,
		el(atom.Div, attrs("class", "pt-6 border-t border-gray-200"),
			el(atom.Button, attrs("type", "button", "class", "btn btn-primary pointer-events-none", "data-role", "submit-preview"), text(SubmitText(doc))),
		),
	))
	return root
}

func documentHeader(doc *model.Form, titleClass string) Node {
	var desc Node
	if doc.Description != "" {
		desc = el(atom.P, attrs("class", "text-gray-600"), text(doc.Description))
	}
	return el(atom.Div, attrs("class", "mb-8 pb-6 border-b border-gray-200"),
		el(atom.H2, attrs("class", titleClass), text(doc.Name)),
		desc,
	)
}

func canvasField(f model.Field, item CanvasItem, act Actions) Node {
	class := "relative group p-4 border-2 rounded-lg border-gray-200 bg-white hover:border-gray-300"
	if item.Selected {
		class = "relative group p-4 border-2 rounded-lg border-primary-500 bg-primary-50"
	}

	return el(atom.Div, attrs("class", class, "data-field-id", f.ID, "data-index", strconv.Itoa(item.Index)),
		itemControls(item, act, "fields", "select"),
		el(atom.Div, attrs("class", "space-y-2"),
			fieldLabel(f, "block text-sm font-medium text-gray-700"),
			renderWidget(f, widgetEnv{inputClass: BaseInputClass}),
			helpText(f, "text-xs text-gray-500"),
		),
	)
}

// itemControls 选中、上移、下移、删除；越界的移动按钮禁用
func itemControls(item CanvasItem, act Actions, collection, selectAction string) Node {
	idx := strconv.Itoa(item.Index)
	return el(atom.Div, attrs("class", "absolute top-2 right-2 flex space-x-1"),
		postButton(act.To(selectAction), "Edit", "p-1 text-gray-400 hover:text-gray-600 bg-white rounded shadow-sm", true, "id", item.ID),
		postButton(act.To(collection, "reorder"), "Move up", "p-1 text-gray-400 hover:text-gray-600 bg-white rounded shadow-sm", item.CanMoveUp,
			"from", idx, "to", strconv.Itoa(item.Index-1)),
		postButton(act.To(collection, "reorder"), "Move down", "p-1 text-gray-400 hover:text-gray-600 bg-white rounded shadow-sm", item.CanMoveDown,
			"from", idx, "to", strconv.Itoa(item.Index+1)),
		postButton(act.To(collection, item.ID, "delete"), "Remove", "p-1 text-red-400 hover:text-red-600 bg-white rounded shadow-sm", true),
	)
}

// postButton 单按钮表单，hidden 为 name, value 对
func postButton(action, label, class string, enabled bool, hidden ...string) Node {
	form := el(atom.Form, attrs("method", "post", "action", action, "class", "inline"))
	for i := 0; i+1 < len(hidden); i += 2 {
		form.AppendChild(el(atom.Input, attrs("type", "hidden", "name", hidden[i], "value", hidden[i+1])))
	}
	form.AppendChild(el(atom.Button, flag(attrs("type", "submit", "class", class, "title", label), "disabled", !enabled), text(label)))
	return form
}

func fieldLabel(f model.Field, class string) Node {
	label := el(atom.Label, attrs("for", f.ID, "class", class), text(f.Label))
	if f.Required {
		label.AppendChild(el(atom.Span, attrs("class", "text-red-500 ml-1"), text("*")))
	}
	return label
}

func helpText(f model.Field, class string) Node {
	if f.HelpText == "" {
		return nil
	}
	return el(atom.P, attrs("class", class), text(f.HelpText))
}

// SectionCanvas 渲染模板模式的章节画布
func SectionCanvas(doc *model.Form, selectedID string, act Actions) Node {
	list := el(atom.Div, attrs("class", "space-y-8"))
	for i, item := range SectionItems(doc, selectedID) {
		list.AppendChild(sectionCard(doc.Sections[i], item, act))
	}
	if len(doc.Sections) == 0 {
		list.AppendChild(el(atom.Div, attrs("class", "text-center py-12"),
			el(atom.P, attrs("class", "text-gray-500"), text("No sections added yet. Add sections from the left panel.")),
		))
	}

	return el(atom.Div, attrs("id", "canvas", "class", "bg-white rounded-lg shadow-sm border border-gray-200 p-8"),
		documentHeader(doc, "text-3xl font-bold text-gray-900 mb-2"),
		list,
	)
}

func sectionCard(s model.Section, item CanvasItem, act Actions) Node {
	class := "relative border-2 border-dashed border-gray-200 rounded-lg p-6 hover:bg-gray-50"
	if item.Selected {
		class = "relative border-2 border-dashed rounded-lg p-6 border-indigo-500 bg-indigo-50"
	}

	badges := el(atom.Div, attrs("class", "flex items-center space-x-2"),
		el(atom.Span, attrs("class", "text-sm text-gray-500 capitalize"), text(string(s.Type))),
	)
	if s.Required {
		badges.AppendChild(el(atom.Span, attrs("class", "px-2 py-1 text-xs bg-red-100 text-red-800 rounded"), text("Required")))
	}

	body := s.Content
	if body == "" {
		body = "This is a " + string(s.Type) + " section. Click to edit content."
	}

	return el(atom.Div, attrs("class", class, "data-section-id", s.ID, "data-index", strconv.Itoa(item.Index)),
		itemControls(item, act, "sections", "sections/select"),
		el(atom.Div, attrs("class", "flex items-center justify-between mb-4"),
			el(atom.H3, attrs("class", "text-lg font-semibold text-gray-900"), text(s.Name)),
			badges,
		),
		el(atom.Div, attrs("class", "text-gray-600"), text(body)),
	)
}
