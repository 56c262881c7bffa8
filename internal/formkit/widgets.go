package formkit

import (
	"slices"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/apper-apps/agencyflowapi/internal/model"
)

// BaseInputClass 画布和默认主题共用的输入框样式
const BaseInputClass = "w-full px-3 py-2 border border-gray-300 rounded-md text-sm focus:outline-none focus:ring-2 focus:ring-primary-500 focus:border-transparent"

const (
	selectPrompt   = "Select an option..."
	unknownClass   = "p-3 bg-gray-100 rounded-md text-center text-gray-500 text-sm"
	radioClass     = "mr-2 text-primary-500"
	checkboxClass  = "mr-2 text-primary-500 rounded"
	optionRowClass = "flex items-center"
	optionText     = "text-sm text-gray-700"
)

// widgetEnv 控件的渲染环境：画布为禁用预览，预览页为可填写并绑定答案
type widgetEnv struct {
	interactive bool
	inputClass  string
	answer      Answer
}

// fieldVariant 一种字段类型在各渲染器中的表现，新增类型只需在 variants 注册一次
type fieldVariant struct {
	widget func(f model.Field, env widgetEnv) Node
	// controls 该类型专属的编辑器控件，排在通用控件之后
	controls []control
}

var variants = map[model.FieldType]fieldVariant{
	model.FieldTypeText:     {widget: inputWidget("text")},
	model.FieldTypeEmail:    {widget: inputWidget("email")},
	model.FieldTypePhone:    {widget: inputWidget("tel")},
	model.FieldTypeDate:     {widget: inputWidget("date")},
	model.FieldTypeNumber:   {widget: numberWidget, controls: []control{rangeControl}},
	model.FieldTypeTextarea: {widget: textareaWidget, controls: []control{rowsControl}},
	model.FieldTypeSelect:   {widget: selectWidget, controls: []control{optionsControl}},
	model.FieldTypeRadio:    {widget: choiceWidget("radio", radioClass), controls: []control{optionsControl}},
	model.FieldTypeCheckbox: {widget: choiceWidget("checkbox", checkboxClass), controls: []control{optionsControl}},
}

// renderWidget 渲染字段控件，未知类型渲染可见的占位块
func renderWidget(f model.Field, env widgetEnv) Node {
	v, ok := variants[f.Type]
	if !ok {
		return unknownWidget(f)
	}
	return v.widget(f, env)
}

func unknownWidget(f model.Field) Node {
	return el(atom.Div, attrs("class", unknownClass), text("Unknown field type: "+string(f.Type)))
}

// baseAttrs id / name / class 以及禁用或必填标记
func baseAttrs(f model.Field, env widgetEnv, extra ...string) []html.Attribute {
	list := attrs(append([]string{"id", f.ID, "name", f.ID, "class", env.inputClass}, extra...)...)
	list = flag(list, "disabled", !env.interactive)
	return flag(list, "required", env.interactive && f.Required)
}

func inputWidget(inputType string) func(model.Field, widgetEnv) Node {
	return func(f model.Field, env widgetEnv) Node {
		kv := []string{"type", inputType}
		if f.Placeholder != "" && inputType != "date" {
			kv = append(kv, "placeholder", f.Placeholder)
		}
		if env.interactive && env.answer.Value != "" {
			kv = append(kv, "value", env.answer.Value)
		}
		return el(atom.Input, baseAttrs(f, env, kv...))
	}
}

func numberWidget(f model.Field, env widgetEnv) Node {
	kv := []string{"type", "number"}
	if f.Placeholder != "" {
		kv = append(kv, "placeholder", f.Placeholder)
	}
	if n := f.Number(); n != nil {
		if n.Min != nil {
			kv = append(kv, "min", formatFloat(*n.Min))
		}
		if n.Max != nil {
			kv = append(kv, "max", formatFloat(*n.Max))
		}
	}
	if env.interactive && env.answer.Value != "" {
		kv = append(kv, "value", env.answer.Value)
	}
	return el(atom.Input, baseAttrs(f, env, kv...))
}

func textareaWidget(f model.Field, env widgetEnv) Node {
	kv := []string{"rows", strconv.Itoa(f.Rows())}
	if f.Placeholder != "" {
		kv = append(kv, "placeholder", f.Placeholder)
	}
	var body Node
	if env.interactive && env.answer.Value != "" {
		body = text(env.answer.Value)
	}
	return el(atom.Textarea, baseAttrs(f, env, kv...), body)
}

func selectWidget(f model.Field, env widgetEnv) Node {
	opts, _ := f.Options()
	children := make([]Node, 0, len(opts)+1)
	children = append(children, el(atom.Option, attrs("value", ""), text(selectPrompt)))
	for _, opt := range opts {
		a := flag(attrs("value", opt), "selected", env.interactive && env.answer.Value == opt)
		children = append(children, el(atom.Option, a, text(opt)))
	}
	return el(atom.Select, baseAttrs(f, env), children...)
}

// choiceWidget radio / checkbox 组，同组共用字段 id 作为 name
func choiceWidget(inputType, class string) func(model.Field, widgetEnv) Node {
	return func(f model.Field, env widgetEnv) Node {
		opts, _ := f.Options()
		rows := make([]Node, 0, len(opts))
		for _, opt := range opts {
			checked := false
			if env.interactive {
				if inputType == "checkbox" {
					checked = slices.Contains(env.answer.Values, opt)
				} else {
					checked = env.answer.Value == opt
				}
			}
			a := attrs("type", inputType, "name", f.ID, "value", opt, "class", class)
			a = flag(a, "checked", checked)
			a = flag(a, "disabled", !env.interactive)
			a = flag(a, "required", env.interactive && inputType == "radio" && f.Required)
			rows = append(rows, el(atom.Label, attrs("class", optionRowClass),
				el(atom.Input, a),
				el(atom.Span, attrs("class", optionText), text(opt)),
			))
		}
		return el(atom.Div, attrs("class", "space-y-2"), rows...)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
