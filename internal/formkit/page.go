package formkit

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/apper-apps/agencyflowapi/internal/domain"
	"github.com/apper-apps/agencyflowapi/internal/model"
)

// StylesheetPath 页面样式表地址，由静态资源路由提供
const StylesheetPath = "/assets/builder.css"

// NoticeLevel 提示级别
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice 动作结果的单条用户提示
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// NoticeFromError 把动作错误转换为提示；校验与传输失败为警告，其余为错误
func NoticeFromError(err error) *Notice {
	if err == nil {
		return nil
	}
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindTransport:
		return &Notice{Level: NoticeWarning, Message: err.Error()}
	default:
		return &Notice{Level: NoticeError, Message: err.Error()}
	}
}

func noticeNode(n *Notice) Node {
	if n == nil {
		return nil
	}
	class := "p-3 rounded-md text-sm bg-red-50 text-red-700"
	switch n.Level {
	case NoticeSuccess:
		class = "p-3 rounded-md text-sm bg-green-50 text-green-700"
	case NoticeWarning:
		class = "p-3 rounded-md text-sm bg-yellow-50 text-yellow-800"
	}
	return el(atom.Div, attrs("id", "notice", "role", "status", "class", class, "data-level", string(n.Level)), text(n.Message))
}

// Document 包装为完整的 HTML 文档
func Document(title string, body ...Node) Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(el(atom.Html, attrs("lang", "en"),
		el(atom.Head, nil,
			el(atom.Meta, attrs("charset", "utf-8")),
			el(atom.Title, nil, text(title)),
			el(atom.Link, attrs("rel", "stylesheet", "href", StylesheetPath)),
		),
		el(atom.Body, attrs("class", "bg-gray-50"), body...),
	))
	return doc
}

// PageData 构建器页面的渲染输入
type PageData struct {
	Doc        *model.Form
	SelectedID string
	Notice     *Notice
	Actions    Actions
	Registry   *Registry
}

// Page 组合面板、画布和配置面板。模板显示章节，表单显示字段
func Page(data PageData) Node {
	doc, act := data.Doc, data.Actions
	isTemplate := doc.IsTemplate()

	var palette, canvas, config Node
	if isTemplate {
		palette = SectionPalette(data.Registry, act)
		canvas = SectionCanvas(doc, data.SelectedID, act)
		if i := doc.SectionByID(data.SelectedID); i >= 0 {
			config = SectionEditor(doc.Sections[i], act)
		} else {
			config = Editor(nil, doc, true, act)
		}
	} else {
		palette = Palette(data.Registry, act)
		canvas = Canvas(doc, data.SelectedID, act)
		var selected *model.Field
		if i := doc.FieldByID(data.SelectedID); i >= 0 {
			f := doc.Fields[i]
			selected = &f
		}
		config = Editor(selected, doc, false, act)
	}

	status := "Draft"
	if doc.ID != 0 {
		status = "Saved"
	}

	header := el(atom.Header, attrs("class", "flex items-center justify-between p-4 bg-white border-b border-gray-200"),
		el(atom.Div, nil,
			el(atom.H1, attrs("class", "text-2xl font-bold text-gray-900"), text(doc.Name)),
			el(atom.Span, attrs("class", "text-xs text-gray-500", "data-status", status), text(status)),
		),
		el(atom.Nav, attrs("class", "flex space-x-3"),
			el(atom.A, attrs("href", act.To("preview"), "class", "btn btn-secondary"), text("Preview")),
			el(atom.A, attrs("href", act.To("embed")+"?kind=inline", "class", "btn btn-secondary"), text("Embed Code")),
			postButton(act.To("save"), "Save", "btn btn-primary", true),
			postButton(act.To("close"), "Close", "btn btn-ghost", true),
		),
	)

	return Document(doc.Name,
		header,
		noticeNode(data.Notice),
		el(atom.Main, attrs("class", "flex"),
			el(atom.Aside, attrs("class", "w-80 bg-white border-r border-gray-200 p-4"), palette),
			el(atom.Section, attrs("class", "flex-1 p-6"), canvas),
			el(atom.Aside, attrs("class", "w-96 bg-white border-l border-gray-200 p-6", "id", "config"), config),
		),
	)
}

// PreviewPage 预览页面
func PreviewPage(doc *model.Form, preview *Preview, notice *Notice, act Actions) Node {
	return Document(doc.Name+" - Preview",
		noticeNode(notice),
		el(atom.Main, attrs("class", "max-w-2xl mx-auto p-6"),
			preview.Render(doc, act),
			el(atom.A, attrs("href", act.To(), "class", "text-sm text-gray-500"), text("Back to builder")),
		),
	)
}

// NoticePage 只包含一条提示的页面
func NoticePage(title string, n *Notice) Node {
	return Document(title, noticeNode(n))
}
