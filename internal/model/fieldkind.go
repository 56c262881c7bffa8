package model

// FieldGroup 字段面板分组
type FieldGroup string

const (
	FieldGroupBasic   FieldGroup = "Basic"
	FieldGroupChoice  FieldGroup = "Choice"
	FieldGroupSpecial FieldGroup = "Special"
)

// FieldGroups 分组的展示顺序
var FieldGroups = []FieldGroup{FieldGroupBasic, FieldGroupChoice, FieldGroupSpecial}

// FieldKind 描述一种字段类型：面板展示信息、分组以及专属属性的构造方式
type FieldKind struct {
	Type        FieldType  `json:"type"`
	Label       string     `json:"label"`
	Icon        string     `json:"icon"`
	Description string     `json:"description"`
	Group       FieldGroup `json:"group"`
	// Placeholder 是否有单一占位文本（radio / checkbox 没有）
	Placeholder bool `json:"-"`
	newProps    func() FieldProps
}

// fieldKinds 字段类型唯一的注册处，顺序即面板顺序
var fieldKinds = []FieldKind{
	{Type: FieldTypeText, Label: "Text Input", Icon: "Type", Description: "Single line text input", Group: FieldGroupBasic, Placeholder: true},
	{Type: FieldTypeTextarea, Label: "Textarea", Icon: "AlignLeft", Description: "Multi-line text input", Group: FieldGroupBasic, Placeholder: true,
		newProps: func() FieldProps { return &TextareaProps{} }},
	{Type: FieldTypeEmail, Label: "Email", Icon: "Mail", Description: "Email address input", Group: FieldGroupBasic, Placeholder: true},
	{Type: FieldTypePhone, Label: "Phone", Icon: "Phone", Description: "Phone number input", Group: FieldGroupBasic, Placeholder: true},
	{Type: FieldTypeNumber, Label: "Number", Icon: "Hash", Description: "Numeric input", Group: FieldGroupBasic, Placeholder: true,
		newProps: func() FieldProps { return &NumberProps{} }},
	{Type: FieldTypeSelect, Label: "Select Dropdown", Icon: "ChevronDown", Description: "Dropdown selection", Group: FieldGroupChoice, Placeholder: true,
		newProps: func() FieldProps { return &ChoiceProps{} }},
	{Type: FieldTypeRadio, Label: "Radio Buttons", Icon: "Circle", Description: "Single choice selection", Group: FieldGroupChoice,
		newProps: func() FieldProps { return &ChoiceProps{} }},
	{Type: FieldTypeCheckbox, Label: "Checkboxes", Icon: "Square", Description: "Multiple choice selection", Group: FieldGroupChoice,
		newProps: func() FieldProps { return &ChoiceProps{} }},
	{Type: FieldTypeDate, Label: "Date", Icon: "Calendar", Description: "Date picker", Group: FieldGroupSpecial, Placeholder: true},
}

// FieldKinds 返回全部字段类型（副本）
func FieldKinds() []FieldKind {
	out := make([]FieldKind, len(fieldKinds))
	copy(out, fieldKinds)
	return out
}

// LookupFieldKind 按类型查找
func LookupFieldKind(t FieldType) (FieldKind, bool) {
	for _, k := range fieldKinds {
		if k.Type == t {
			return k, true
		}
	}
	return FieldKind{}, false
}

// IsValidFieldType 是否为已注册的字段类型
func IsValidFieldType(t FieldType) bool {
	_, ok := LookupFieldKind(t)
	return ok
}

// IsChoice 该类型是否携带选项
func (k FieldKind) IsChoice() bool {
	_, ok := k.NewProps().(*ChoiceProps)
	return ok
}

// NewProps 创建该类型的空专属属性；无专属属性的类型返回 nil
func (k FieldKind) NewProps() FieldProps {
	if k.newProps == nil {
		return nil
	}
	return k.newProps()
}

// NewFieldProps 按类型创建空专属属性，未知类型返回 nil
func NewFieldProps(t FieldType) FieldProps {
	kind, ok := LookupFieldKind(t)
	if !ok {
		return nil
	}
	return kind.NewProps()
}
