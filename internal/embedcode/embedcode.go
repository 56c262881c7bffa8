// Package embedcode 生成表单与提案模板的部署代码片段
package embedcode

import (
	"errors"
	"fmt"
	"html"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/apper-apps/agencyflowapi/internal/domain"
	"github.com/apper-apps/agencyflowapi/internal/model"
)

var (
	ErrNoDocument      = errors.New("no document to embed")
	ErrUnsavedDocument = errors.New("document must be saved before embedding")
)

// Kind 嵌入方式
type Kind string

const (
	KindInline   Kind = "inline"
	KindIframe   Kind = "iframe"
	KindPopup    Kind = "popup"
	KindRedirect Kind = "redirect"
)

// KindInfo 嵌入方式的展示信息
type KindInfo struct {
	Kind        Kind   `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Kinds 可选的嵌入方式，按下拉框顺序
var Kinds = []KindInfo{
	{Kind: KindInline, Label: "Inline Embed", Description: "Embeds the form directly in your page"},
	{Kind: KindIframe, Label: "iFrame Embed", Description: "Loads the form in an iframe"},
	{Kind: KindPopup, Label: "Popup Modal", Description: "Opens the form in a popup window"},
	{Kind: KindRedirect, Label: "External Link", Description: "Links to the form on a separate page"},
}

const (
	defaultEmbedTheme  = model.ThemeProfessional
	defaultSubmitText  = model.DefaultSubmitText
	popupWindowName    = "agencyflow-proposal"
	popupWindowOptions = "width=800,height=900,scrollbars=yes,resizable=yes"
)

// Generator 根据文档生成嵌入代码。同样的输入总是得到同样的输出
type Generator struct {
	// Origin 托管站点地址，例如 https://app.example.com
	Origin string
}

// NewGenerator 创建生成器，去掉 origin 末尾的斜杠
func NewGenerator(origin string) *Generator {
	return &Generator{Origin: strings.TrimRight(origin, "/")}
}

// EmbedURL 文档的嵌入地址
func (g *Generator) EmbedURL(doc *model.Form) string {
	return fmt.Sprintf("%s/api/forms/%d/embed", g.Origin, doc.ID)
}

// Generate 生成指定方式的代码；未知方式返回空串且不报错
func (g *Generator) Generate(doc *model.Form, kind Kind) (string, error) {
	if doc == nil {
		return "", ErrNoDocument
	}
	if doc.ID == 0 {
		return "", ErrUnsavedDocument
	}

	switch kind {
	case KindInline:
		return g.inline(doc), nil
	case KindIframe:
		return g.iframe(doc), nil
	case KindPopup:
		return g.popup(doc), nil
	case KindRedirect:
		return g.redirect(doc), nil
	default:
		return "", nil
	}
}

var colorValidator = sync.OnceValue(func() *validator.Validate {
	return validator.New()
})

// theme 未设置或不认识的主题使用默认值，保证写入脚本的只有已知主题名
func theme(doc *model.Form) string {
	if !slices.Contains(model.Themes, doc.Settings.Theme) {
		return string(defaultEmbedTheme)
	}
	return string(doc.Settings.Theme)
}

func submitText(doc *model.Form) string {
	if doc.Settings.SubmitText == "" {
		return defaultSubmitText
	}
	return html.EscapeString(doc.Settings.SubmitText)
}

// colors 品牌色直接写入 style，不是合法十六进制颜色时使用默认值
func colors(doc *model.Form) (primary, secondary string) {
	return hexOr(doc.Branding.PrimaryColor, model.DefaultPrimaryColor),
		hexOr(doc.Branding.SecondaryColor, model.DefaultSecondaryColor)
}

func hexOr(color, fallback string) string {
	if color == "" || colorValidator().Var(color, "hexcolor") != nil {
		return fallback
	}
	return color
}

func (g *Generator) inline(doc *model.Form) string {
	return fmt.Sprintf(`<!-- AgencyFlow Proposal Template Embed -->
<div id="agencyflow-template-%[1]d"></div>
<script>
(function() {
  var script = document.createElement('script');
  script.src = '%[2]s/embed.js';
  script.setAttribute('data-template-id', '%[1]d');
  script.setAttribute('data-theme', '%[3]s');
  script.setAttribute('data-type', 'proposal');
  document.head.appendChild(script);
})();
</script>`, doc.ID, g.Origin, theme(doc))
}

func (g *Generator) iframe(doc *model.Form) string {
	return fmt.Sprintf(`<!-- AgencyFlow Proposal Template iFrame -->
<iframe 
  src="%s" 
  width="100%%" 
  height="800" 
  frameborder="0" 
  style="border: none; border-radius: 8px;"
  title="%s">
</iframe>`, g.EmbedURL(doc), html.EscapeString(doc.Name))
}

func (g *Generator) popup(doc *model.Form) string {
	primary, secondary := colors(doc)
	return fmt.Sprintf(`<!-- AgencyFlow Popup Proposal -->
<button onclick="openAgencyFlowProposal('%[1]d')" style="
  background: linear-gradient(135deg, %[2]s, %[3]s);
  color: white;
  border: none;
  padding: 12px 24px;
  border-radius: 6px;
  font-weight: 500;
  cursor: pointer;
  transition: transform 0.2s;
" onmouseover="this.style.transform='scale(1.05)'" onmouseout="this.style.transform='scale(1)'">
  %[4]s
</button>
<script>
function openAgencyFlowProposal(templateId) {
  var popup = window.open('%[5]s?popup=true', '%[6]s', '%[7]s');
  popup.focus();
}
</script>`, doc.ID, primary, secondary, submitText(doc), g.EmbedURL(doc), popupWindowName, popupWindowOptions)
}

func (g *Generator) redirect(doc *model.Form) string {
	primary, secondary := colors(doc)
	return fmt.Sprintf(`<!-- AgencyFlow Proposal Template Redirect -->
<a href="%s" target="_blank" style="
  display: inline-block;
  background: linear-gradient(135deg, %s, %s);
  color: white;
  text-decoration: none;
  padding: 12px 24px;
  border-radius: 6px;
  font-weight: 500;
  transition: transform 0.2s;
" onmouseover="this.style.transform='scale(1.05)'" onmouseout="this.style.transform='scale(1)'">
  %s →
</a>`, g.EmbedURL(doc), primary, secondary, submitText(doc))
}

// Clipboard 系统剪贴板
type Clipboard interface {
	WriteAll(text string) error
}

// Copy 生成代码并写入剪贴板。生成失败原样返回，
// 写入剪贴板失败返回 *domain.TransportError，两者可区分
func (g *Generator) Copy(cb Clipboard, doc *model.Form, kind Kind) (string, error) {
	code, err := g.Generate(doc, kind)
	if err != nil {
		return "", err
	}
	if code == "" {
		return "", &domain.ValidationError{Message: fmt.Sprintf("unknown embed kind %q", kind)}
	}
	if err := cb.WriteAll(code); err != nil {
		return "", &domain.TransportError{Op: "copy to clipboard", Err: err}
	}
	return code, nil
}
