package formkit

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/apper-apps/agencyflowapi/internal/domain"
	"github.com/apper-apps/agencyflowapi/internal/model"
)

const (
	labelClass    = "block text-sm font-medium text-gray-700 mb-2"
	checkRowClass = "flex items-center"
	checkClass    = "mr-2 text-primary-500 rounded"
	checkText     = "text-sm text-gray-700"

	// MinTextareaRows / MaxTextareaRows 行数下拉框的范围
	MinTextareaRows = 2
	MaxTextareaRows = 6

	// placeholderPrefix 模板占位符输入框的 name 前缀
	placeholderPrefix = "placeholder."
	optionsMarker     = "options_present"
)

// control 某一字段类型专属的编辑控件
type control func(f model.Field, act Actions) Node

// EditorCallbacks 编辑面板唯一的修改途径
type EditorCallbacks struct {
	OnFieldUpdate   func(fieldID string, patch model.FieldPatch) error
	OnSectionUpdate func(sectionID string, patch model.SectionPatch) error
	OnFormUpdate    func(update func(doc *model.Form)) error
}

// Editor 渲染配置面板：选中字段时编辑字段，否则编辑文档设置；
// 品牌和占位符分组只在模板模式展示
func Editor(field *model.Field, doc *model.Form, isTemplate bool, act Actions) Node {
	if field == nil {
		return documentEditor(doc, isTemplate, act)
	}
	return fieldEditor(*field, act)
}

func fieldEditor(f model.Field, act Actions) Node {
	form := el(atom.Form, attrs("id", "field-editor", "method", "post", "action", act.To("fields", f.ID), "class", "space-y-6", "data-field-type", string(f.Type)),
		el(atom.Div, attrs("class", "pb-4 border-b border-gray-200"),
			el(atom.H4, attrs("class", "font-medium text-gray-900 capitalize"), text(string(f.Type)+" Field Settings")),
		),
		textControl("Field Label", "label", f.Label, "Enter field label"),
	)
	if f.HasPlaceholder() {
		form.AppendChild(textControl("Placeholder Text", "placeholder", f.Placeholder, "Enter placeholder text"))
	}
	form.AppendChild(textareaControl("Help Text", "helpText", f.HelpText, "Optional help text", 2))
	form.AppendChild(checkControl("required", "Required field", f.Required))

	if v, ok := variants[f.Type]; ok {
		for _, c := range v.controls {
			form.AppendChild(c(f, act))
		}
	}
	form.AppendChild(el(atom.Button, attrs("type", "submit", "class", "btn btn-primary"), text("Apply")))
	return form
}

func textControl(label, name, value, placeholder string) Node {
	return el(atom.Div, nil,
		el(atom.Label, attrs("for", name, "class", labelClass), text(label)),
		el(atom.Input, attrs("type", "text", "id", name, "name", name, "value", value, "placeholder", placeholder, "class", BaseInputClass)),
	)
}

func textareaControl(label, name, value, placeholder string, rows int) Node {
	var body Node
	if value != "" {
		body = text(value)
	}
	return el(atom.Div, nil,
		el(atom.Label, attrs("for", name, "class", labelClass), text(label)),
		el(atom.Textarea, attrs("id", name, "name", name, "rows", strconv.Itoa(rows), "placeholder", placeholder, "class", BaseInputClass), body),
	)
}

// checkControl 未勾选的 checkbox 不会被提交，前置同名 hidden 值 false，解码时取最后一个
func checkControl(name, label string, checked bool) Node {
	return el(atom.Div, attrs("class", checkRowClass),
		el(atom.Input, attrs("type", "hidden", "name", name, "value", "false")),
		el(atom.Input, flag(attrs("type", "checkbox", "id", name, "name", name, "value", "true", "class", checkClass), "checked", checked)),
		el(atom.Label, attrs("for", name, "class", checkText), text(label)),
	)
}

func selectControl(label, name string, options [][2]string, selected string) Node {
	list := make([]Node, 0, len(options))
	for _, o := range options {
		list = append(list, el(atom.Option, flag(attrs("value", o[0]), "selected", o[0] == selected), text(o[1])))
	}
	return el(atom.Div, nil,
		el(atom.Label, attrs("for", name, "class", labelClass), text(label)),
		el(atom.Select, attrs("id", name, "name", name, "class", BaseInputClass), list...),
	)
}

func optionsControl(f model.Field, act Actions) Node {
	opts, _ := f.Options()
	base := act.To("fields", f.ID, "options")

	rows := el(atom.Div, attrs("class", "space-y-2"))
	for i, opt := range opts {
		rows.AppendChild(el(atom.Div, attrs("class", "flex items-center space-x-2"),
			el(atom.Input, attrs("type", "text", "name", "options", "value", opt, "placeholder", fmt.Sprintf("Option %d", i+1), "class", BaseInputClass)),
			el(atom.Button, attrs("type", "submit", "formaction", base+"?op=remove&index="+strconv.Itoa(i), "class", "btn btn-ghost text-red-500 hover:text-red-700", "title", "Remove option"), text("Remove")),
		))
	}

	section := el(atom.Div, attrs("data-control", "options"),
		el(atom.Input, attrs("type", "hidden", "name", optionsMarker, "value", "1")),
		el(atom.Div, attrs("class", "flex items-center justify-between mb-2"),
			el(atom.Label, attrs("class", "block text-sm font-medium text-gray-700"), text("Options")),
			el(atom.Button, attrs("type", "submit", "formaction", base+"?op=add", "class", "btn btn-ghost btn-sm"), text("Add Option")),
		),
		rows,
	)
	if len(opts) == 0 {
		section.AppendChild(el(atom.P, attrs("class", "text-sm text-gray-500 text-center py-4"), text("No options added yet")))
	}
	return section
}

func rangeControl(f model.Field, act Actions) Node {
	var minVal, maxVal string
	if n := f.Number(); n != nil {
		if n.Min != nil {
			minVal = formatFloat(*n.Min)
		}
		if n.Max != nil {
			maxVal = formatFloat(*n.Max)
		}
	}
	numberInput := func(label, name, value, placeholder string) Node {
		return el(atom.Div, nil,
			el(atom.Label, attrs("for", name, "class", labelClass), text(label)),
			el(atom.Input, attrs("type", "number", "id", name, "name", name, "value", value, "placeholder", placeholder, "class", BaseInputClass)),
		)
	}
	return el(atom.Div, attrs("class", "grid grid-cols-2 gap-4", "data-control", "range"),
		numberInput("Minimum Value", "min", minVal, "Min"),
		numberInput("Maximum Value", "max", maxVal, "Max"),
	)
}

func rowsControl(f model.Field, act Actions) Node {
	options := make([][2]string, 0, MaxTextareaRows-MinTextareaRows+1)
	for r := MinTextareaRows; r <= MaxTextareaRows; r++ {
		options = append(options, [2]string{strconv.Itoa(r), fmt.Sprintf("%d rows", r)})
	}
	n := selectControl("Rows", "rows", options, strconv.Itoa(f.Rows()))
	n.Attr = append(n.Attr, attrs("data-control", "rows")...)
	return n
}

func documentEditor(doc *model.Form, isTemplate bool, act Actions) Node {
	noun := "Form"
	if isTemplate {
		noun = "Template"
	}
	settings := doc.Settings.WithDefaults(doc.Kind)

	themeOptions := make([][2]string, 0, len(model.Themes))
	for _, t := range model.Themes {
		themeOptions = append(themeOptions, [2]string{string(t), titleCase(string(t))})
	}

	form := el(atom.Form, attrs("id", "document-editor", "method", "post", "action", act.To("form"), "class", "space-y-6"),
		textControl(noun+" Name", "name", doc.Name, "Enter "+strings.ToLower(noun)+" name"),
		textareaControl(noun+" Description", "description", doc.Description, "Optional "+strings.ToLower(noun)+" description", 3),
		textControl("Submit Button Text", "submitText", settings.SubmitText, "Submit button text"),
		textareaControl("Success Message", "successMessage", settings.SuccessMessage, "Message shown after successful submission", 3),
		selectControl(noun+" Theme", "theme", themeOptions, string(settings.Theme)),
	)

	if !isTemplate {
		form.AppendChild(checkControl("allowMultiple", "Allow multiple submissions from same user", settings.AllowMultiple))
	} else {
		form.AppendChild(selectControl("Category", "category", categoryOptions(), string(doc.Category)))
		form.AppendChild(checkControl("allowComments", "Allow client comments", settings.AllowComments))
		form.AppendChild(checkControl("requireSignature", "Require signature to accept", settings.RequireSignature))
		form.AppendChild(brandingGroup(doc.Branding.WithDefaults()))
		form.AppendChild(placeholderGroup(doc.Placeholders))
	}

	form.AppendChild(el(atom.Button, attrs("type", "submit", "class", "btn btn-primary"), text("Apply")))
	return form
}

func categoryOptions() [][2]string {
	out := make([][2]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		out = append(out, [2]string{string(c.ID), c.Name})
	}
	return out
}

func brandingGroup(b model.Branding) Node {
	positions := [][2]string{{"top-left", "Top Left"}, {"top-right", "Top Right"}, {"center", "Center"}}
	colorInput := func(label, name, value string) Node {
		return el(atom.Div, nil,
			el(atom.Label, attrs("for", name, "class", labelClass), text(label)),
			el(atom.Input, attrs("type", "color", "id", name, "name", name, "value", value, "class", "h-10 w-full rounded-md border border-gray-300")),
		)
	}
	return el(atom.Fieldset, attrs("class", "space-y-4 pt-4 border-t border-gray-200", "data-group", "branding"),
		el(atom.Legend, attrs("class", "text-sm font-semibold text-gray-900"), text("Branding")),
		colorInput("Primary Color", "primaryColor", b.PrimaryColor),
		colorInput("Secondary Color", "secondaryColor", b.SecondaryColor),
		textControl("Font Family", "fontFamily", b.FontFamily, "Inter"),
		selectControl("Logo Position", "logoPosition", positions, b.LogoPosition),
		textControl("Logo URL", "logo", b.Logo, "https://"),
		checkControl("letterhead", "Use letterhead", b.Letterhead),
	)
}

func placeholderGroup(placeholders map[string]string) Node {
	if placeholders == nil {
		placeholders = model.DefaultPlaceholders()
	}
	keys := make([]string, 0, len(placeholders))
	for k := range placeholders {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	group := el(atom.Fieldset, attrs("class", "space-y-4 pt-4 border-t border-gray-200", "data-group", "placeholders"),
		el(atom.Legend, attrs("class", "text-sm font-semibold text-gray-900"), text("Content Placeholders")),
	)
	for _, k := range keys {
		group.AppendChild(textControl(k, placeholderPrefix+k, placeholders[k], ""))
	}
	return group
}

// SectionEditor 章节配置面板
func SectionEditor(s model.Section, act Actions) Node {
	kinds := model.SectionKinds()
	options := make([][2]string, 0, len(kinds))
	for _, k := range kinds {
		options = append(options, [2]string{string(k.Type), k.Label})
	}
	return el(atom.Form, attrs("id", "section-editor", "method", "post", "action", act.To("sections", s.ID), "class", "space-y-6"),
		textControl("Section Name", "name", s.Name, "Section name"),
		selectControl("Section Type", "type", options, string(s.Type)),
		textareaControl("Content", "content", s.Content, "Section content", 6),
		checkControl("required", "Required section", s.Required),
		el(atom.Button, attrs("type", "submit", "class", "btn btn-primary"), text("Apply")),
	)
}

// lastValue 同名字段取最后一个值，配合 checkControl 的 hidden 前缀
func lastValue(values url.Values, key string) (string, bool) {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

func stringPtr(values url.Values, key string) *string {
	if v, ok := lastValue(values, key); ok {
		return &v
	}
	return nil
}

func boolPtr(values url.Values, key string) *bool {
	if v, ok := lastValue(values, key); ok {
		b := v == "true" || v == "on" || v == "1"
		return &b
	}
	return nil
}

// floatPatch 空串表示清空，无法解析的值忽略
func floatPatch(values url.Values, key string) **float64 {
	v, ok := lastValue(values, key)
	if !ok {
		return nil
	}
	if v == "" {
		var cleared *float64
		return &cleared
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	p := &f
	return &p
}

// DecodeFieldPatch 把字段编辑表单解码为补丁，只保留该类型可配置的属性
func DecodeFieldPatch(f model.Field, values url.Values) model.FieldPatch {
	patch := model.FieldPatch{
		Label:    stringPtr(values, "label"),
		HelpText: stringPtr(values, "helpText"),
		Required: boolPtr(values, "required"),
	}
	if f.HasPlaceholder() {
		patch.Placeholder = stringPtr(values, "placeholder")
	}
	switch {
	case f.Choice() != nil:
		if _, ok := values[optionsMarker]; ok {
			opts := slices.Clone(values["options"])
			if opts == nil {
				opts = []string{}
			}
			patch.Options = &opts
		}
	case f.Number() != nil:
		patch.Min = floatPatch(values, "min")
		patch.Max = floatPatch(values, "max")
	case f.Textarea() != nil:
		if v, ok := lastValue(values, "rows"); ok {
			if r, err := strconv.Atoi(v); err == nil && r >= MinTextareaRows && r <= MaxTextareaRows {
				patch.Rows = &r
			}
		}
	}
	return patch
}

// ApplyFieldForm 解码字段表单并通过回调提交
func ApplyFieldForm(f model.Field, values url.Values, cb EditorCallbacks) error {
	return cb.OnFieldUpdate(f.ID, DecodeFieldPatch(f, values))
}

// OptionOp 选项编辑动作
type OptionOp string

const (
	OptionAdd    OptionOp = "add"
	OptionUpdate OptionOp = "update"
	OptionRemove OptionOp = "remove"
)

// OptionPatch 基于当前选项计算选项动作的补丁；删除最后一个选项得到空列表而不是 nil
func OptionPatch(f model.Field, op OptionOp, index int, value string) (model.FieldPatch, error) {
	current, ok := f.Options()
	if !ok {
		return model.FieldPatch{}, &domain.ValidationError{Message: fmt.Sprintf("field type %s has no options", f.Type)}
	}
	opts := slices.Clone(current)
	if opts == nil {
		opts = []string{}
	}
	switch op {
	case OptionAdd:
		opts = append(opts, fmt.Sprintf("Option %d", len(opts)+1))
	case OptionUpdate:
		if index < 0 || index >= len(opts) {
			return model.FieldPatch{}, &domain.ValidationError{Message: fmt.Sprintf("option index %d out of range", index)}
		}
		opts[index] = value
	case OptionRemove:
		if index < 0 || index >= len(opts) {
			return model.FieldPatch{}, &domain.ValidationError{Message: fmt.Sprintf("option index %d out of range", index)}
		}
		opts = slices.Delete(opts, index, index+1)
	default:
		return model.FieldPatch{}, &domain.ValidationError{Message: fmt.Sprintf("unknown option op %q", op)}
	}
	return model.FieldPatch{Options: &opts}, nil
}

// ApplyOptionForm 处理选项按钮：同一表单里已编辑的内容与选项动作合并为一次更新
func ApplyOptionForm(f model.Field, op OptionOp, index int, values url.Values, cb EditorCallbacks) error {
	edits := DecodeFieldPatch(f, values)
	patch, err := OptionPatch(edits.Apply(f), op, index, values.Get("value"))
	if err != nil {
		return err
	}
	edits.Options = patch.Options
	return cb.OnFieldUpdate(f.ID, edits)
}

// DecodeSettingsPatch 解码文档设置，非法主题被忽略
func DecodeSettingsPatch(values url.Values, isTemplate bool) model.SettingsPatch {
	patch := model.SettingsPatch{
		SubmitText:     stringPtr(values, "submitText"),
		SuccessMessage: stringPtr(values, "successMessage"),
	}
	if v, ok := lastValue(values, "theme"); ok && slices.Contains(model.Themes, model.Theme(v)) {
		t := model.Theme(v)
		patch.Theme = &t
	}
	if isTemplate {
		patch.AllowComments = boolPtr(values, "allowComments")
		patch.RequireSignature = boolPtr(values, "requireSignature")
	} else {
		patch.AllowMultiple = boolPtr(values, "allowMultiple")
	}
	return patch
}

// DecodeBrandingPatch 解码品牌设置
func DecodeBrandingPatch(values url.Values) model.BrandingPatch {
	return model.BrandingPatch{
		PrimaryColor:   stringPtr(values, "primaryColor"),
		SecondaryColor: stringPtr(values, "secondaryColor"),
		FontFamily:     stringPtr(values, "fontFamily"),
		LogoPosition:   stringPtr(values, "logoPosition"),
		Logo:           stringPtr(values, "logo"),
		Letterhead:     boolPtr(values, "letterhead"),
	}
}

// ApplyDocumentForm 解码文档设置表单，整体作为一次 OnFormUpdate 提交
func ApplyDocumentForm(values url.Values, isTemplate bool, cb EditorCallbacks) error {
	name := stringPtr(values, "name")
	description := stringPtr(values, "description")
	settings := DecodeSettingsPatch(values, isTemplate)

	var branding model.BrandingPatch
	placeholders := map[string]string{}
	var category *model.Category
	if isTemplate {
		branding = DecodeBrandingPatch(values)
		for k := range values {
			if token, ok := strings.CutPrefix(k, placeholderPrefix); ok && token != "" {
				placeholders[token], _ = lastValue(values, k)
			}
		}
		if v, ok := lastValue(values, "category"); ok && model.IsValidCategory(model.Category(v)) {
			c := model.Category(v)
			category = &c
		}
	}

	return cb.OnFormUpdate(func(doc *model.Form) {
		if name != nil {
			doc.Name = *name
		}
		if description != nil {
			doc.Description = *description
		}
		doc.Settings = settings.Apply(doc.Settings)
		if isTemplate {
			doc.Branding = branding.Apply(doc.Branding)
			if category != nil {
				doc.Category = *category
			}
			if len(placeholders) > 0 && doc.Placeholders == nil {
				doc.Placeholders = map[string]string{}
			}
			for k, v := range placeholders {
				doc.Placeholders[k] = v
			}
		}
	})
}

// DecodeSectionPatch 解码章节表单，未知章节类型被忽略
func DecodeSectionPatch(values url.Values) model.SectionPatch {
	patch := model.SectionPatch{
		Name:     stringPtr(values, "name"),
		Content:  stringPtr(values, "content"),
		Required: boolPtr(values, "required"),
	}
	if v, ok := lastValue(values, "type"); ok {
		if _, known := model.LookupSectionKind(model.SectionType(v)); known {
			t := model.SectionType(v)
			patch.Type = &t
		}
	}
	return patch
}

// ApplySectionForm 解码章节表单并通过回调提交
func ApplySectionForm(s model.Section, values url.Values, cb EditorCallbacks) error {
	return cb.OnSectionUpdate(s.ID, DecodeSectionPatch(values))
}
