package formkit

import (
	"context"
	"errors"
	"maps"
	"net/url"
	"slices"
	"sync"
	"time"

	"golang.org/x/net/html/atom"
	"k8s.io/klog/v2"

	"github.com/apper-apps/agencyflowapi/internal/domain"
	"github.com/apper-apps/agencyflowapi/internal/model"
)

// ErrSubmitDisabled 文档既无字段也无章节时禁止提交
var ErrSubmitDisabled = errors.New("submit disabled")

// SubmitDisabledMessage 空文档提交时的提示
const SubmitDisabledMessage = "Add at least one field before submitting"

// DefaultSubmitDelay 模拟提交的延迟
const DefaultSubmitDelay = time.Second

// Answer 单个字段的答案；checkbox 使用 Values，其余类型使用 Value
type Answer struct {
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

// IsEmpty 答案是否为空
func (a Answer) IsEmpty() bool {
	return a.Value == "" && len(a.Values) == 0
}

// Submitter 预览提交的目标
type Submitter interface {
	Submit(ctx context.Context, doc *model.Form, answers map[string]Answer) error
}

// SubmitterFunc 函数适配器
type SubmitterFunc func(ctx context.Context, doc *model.Form, answers map[string]Answer) error

// Submit 实现 Submitter
func (f SubmitterFunc) Submit(ctx context.Context, doc *model.Form, answers map[string]Answer) error {
	return f(ctx, doc, answers)
}

// DelaySubmitter 只等待固定延迟的模拟提交，可被 ctx 取消
type DelaySubmitter struct {
	Delay time.Duration
}

// Submit 实现 Submitter
func (d DelaySubmitter) Submit(ctx context.Context, doc *model.Form, answers map[string]Answer) error {
	if d.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Preview 可填写的预览状态：答案表和提交目标。字段定义不在这里保存
type Preview struct {
	mu        sync.Mutex
	answers   map[string]Answer
	submitter Submitter
}

// NewPreview 创建预览，submitter 为 nil 时使用默认延迟的模拟提交
func NewPreview(submitter Submitter) *Preview {
	if submitter == nil {
		submitter = DelaySubmitter{Delay: DefaultSubmitDelay}
	}
	return &Preview{answers: map[string]Answer{}, submitter: submitter}
}

// SetAnswer 设置标量答案，空值等同于清除
func (p *Preview) SetAnswer(fieldID, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if value == "" {
		delete(p.answers, fieldID)
		return
	}
	p.answers[fieldID] = Answer{Value: value}
}

// ToggleOption 勾选或取消 checkbox 选项
func (p *Preview) ToggleOption(fieldID, option string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	values := slices.Clone(p.answers[fieldID].Values)
	if i := slices.Index(values, option); i >= 0 {
		values = slices.Delete(values, i, i+1)
	} else {
		values = append(values, option)
	}
	if len(values) == 0 {
		delete(p.answers, fieldID)
		return
	}
	p.answers[fieldID] = Answer{Values: values}
}

// Fill 用整张表单的提交值替换答案；checkbox 取多值，其余取首值
func (p *Preview) Fill(doc *model.Form, values url.Values) {
	next := make(map[string]Answer, len(doc.Fields))
	for _, f := range doc.Fields {
		if f.Type == model.FieldTypeCheckbox {
			if vs := values[f.ID]; len(vs) > 0 {
				next[f.ID] = Answer{Values: slices.Clone(vs)}
			}
			continue
		}
		if v := values.Get(f.ID); v != "" {
			next[f.ID] = Answer{Value: v}
		}
	}
	p.mu.Lock()
	p.answers = next
	p.mu.Unlock()
}

// Clear 清空答案，字段定义不受影响
func (p *Preview) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.answers = map[string]Answer{}
}

// Answers 返回答案副本
func (p *Preview) Answers() map[string]Answer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneAnswers(p.answers)
}

func cloneAnswers(in map[string]Answer) map[string]Answer {
	out := maps.Clone(in)
	for k, a := range out {
		a.Values = slices.Clone(a.Values)
		out[k] = a
	}
	return out
}

// MissingRequired 按字段顺序返回未填写的必填字段
func MissingRequired(doc *model.Form, answers map[string]Answer) []model.Field {
	var missing []model.Field
	for _, f := range doc.Fields {
		if f.Required && answers[f.ID].IsEmpty() {
			missing = append(missing, f)
		}
	}
	return missing
}

// SuccessMessage 提交成功提示，未设置时为默认值
func SuccessMessage(doc *model.Form) string {
	if doc.Settings.SuccessMessage != "" {
		return doc.Settings.SuccessMessage
	}
	return model.DefaultPreviewSuccessMsg
}

// Submit 校验必填字段后提交；成功时返回成功提示并清空答案。
// 校验失败不会调用 submitter；提交失败时答案保留，可重试
func (p *Preview) Submit(ctx context.Context, doc *model.Form) (string, error) {
	if doc.IsEmpty() {
		return "", &domain.ValidationError{Message: SubmitDisabledMessage, Err: ErrSubmitDisabled}
	}

	p.mu.Lock()
	answers := cloneAnswers(p.answers)
	submitter := p.submitter
	p.mu.Unlock()

	if missing := MissingRequired(doc, answers); len(missing) > 0 {
		labels := make([]string, len(missing))
		for i, f := range missing {
			labels[i] = f.Label
		}
		return "", &domain.ValidationError{Message: "Please fill in required fields", Details: labels}
	}

	if err := submitter.Submit(ctx, doc, answers); err != nil {
		klog.Warningf("预览提交失败: form=%d, error=%v", doc.ID, err)
		return "", &domain.TransportError{Op: "submit", Err: err}
	}

	p.Clear()
	return SuccessMessage(doc), nil
}

// Render 按主题渲染可填写的预览，控件绑定当前答案
func (p *Preview) Render(doc *model.Form, act Actions) Node {
	answers := p.Answers()
	rules := ResolveTheme(doc.Settings.Theme)

	var desc Node
	if doc.Description != "" {
		desc = el(atom.P, attrs("class", "text-gray-600 mt-1"), text(doc.Description))
	}

	container := el(atom.Div, attrs("class", rules.Container))
	for _, s := range doc.Sections {
		container.AppendChild(el(atom.Div, attrs("class", rules.Field, "data-section-id", s.ID),
			el(atom.H4, attrs("class", "block mb-2 "+rules.Label), text(s.Name)),
			el(atom.P, attrs("class", "text-gray-600"), text(s.Content)),
		))
	}
	for _, f := range doc.Fields {
		container.AppendChild(el(atom.Div, attrs("class", rules.Field, "data-field-id", f.ID),
			fieldLabel(f, "block mb-2 "+rules.Label),
			renderWidget(f, widgetEnv{interactive: true, inputClass: rules.Input, answer: answers[f.ID]}),
			helpText(f, "text-xs text-gray-500 mt-1"),
		))
	}

	submit := el(atom.Button, flag(attrs("type", "submit", "class", "btn btn-primary"), "disabled", doc.IsEmpty()), text(SubmitText(doc)))
	clearBtn := el(atom.Button, attrs("type", "submit", "class", "btn btn-secondary", "formaction", act.To("preview", "clear"), "formnovalidate", ""), text("Clear Form"))

	return el(atom.Form, attrs("id", "preview", "method", "post", "action", act.To("preview", "submit"), "class", "space-y-6"),
		el(atom.Div, attrs("class", "pb-4 border-b border-gray-200"),
			el(atom.H3, attrs("class", "text-lg font-semibold text-gray-900"), text(doc.Name)),
			desc,
		),
		container,
		el(atom.Div, attrs("class", "pt-4 border-t border-gray-200"),
			el(atom.Div, attrs("class", "flex space-x-3"), submit, clearBtn),
		),
	)
}
