package model

// SectionType 提案模板章节类型
type SectionType string

const (
	SectionTypeCover    SectionType = "cover"
	SectionTypeContent  SectionType = "content"
	SectionTypePricing  SectionType = "pricing"
	SectionTypeTimeline SectionType = "timeline"
	SectionTypeTerms    SectionType = "terms"
	SectionTypeList     SectionType = "list"
	SectionTypeGrid     SectionType = "grid"
	SectionTypeMetrics  SectionType = "metrics"
)

// Section 提案模板中的一个章节（模板模式下对应字段）
type Section struct {
	ID       string      `json:"id"`
	Name     string      `json:"name" validate:"required,max=255"`
	Type     SectionType `json:"type" validate:"oneof=cover content pricing timeline terms list grid metrics"`
	Required bool        `json:"required"`
	Content  string      `json:"content"`
	Order    int         `json:"order"`
}

// SectionGroup 章节面板分组
type SectionGroup string

const (
	SectionGroupStructure  SectionGroup = "Structure"
	SectionGroupCommercial SectionGroup = "Commercial"
	SectionGroupLayout     SectionGroup = "Layout"
)

// SectionGroups 分组展示顺序
var SectionGroups = []SectionGroup{SectionGroupStructure, SectionGroupCommercial, SectionGroupLayout}

// SectionKind 章节类型的展示信息与默认内容
type SectionKind struct {
	Type           SectionType  `json:"type"`
	Label          string       `json:"label"`
	Icon           string       `json:"icon"`
	Group          SectionGroup `json:"group"`
	DefaultContent string       `json:"defaultContent"`
}

var sectionKinds = []SectionKind{
	{Type: SectionTypeCover, Label: "Cover Page", Icon: "FileText", Group: SectionGroupStructure, DefaultContent: "Professional proposal cover with your branding"},
	{Type: SectionTypeContent, Label: "Content Block", Icon: "AlignLeft", Group: SectionGroupStructure, DefaultContent: "Add your content here"},
	{Type: SectionTypeTerms, Label: "Terms & Conditions", Icon: "Scale", Group: SectionGroupStructure, DefaultContent: "Terms and conditions"},
	{Type: SectionTypePricing, Label: "Pricing Table", Icon: "DollarSign", Group: SectionGroupCommercial, DefaultContent: "Detailed pricing breakdown and payment terms"},
	{Type: SectionTypeTimeline, Label: "Timeline", Icon: "Calendar", Group: SectionGroupCommercial, DefaultContent: "Project timeline and milestones"},
	{Type: SectionTypeMetrics, Label: "Metrics", Icon: "TrendingUp", Group: SectionGroupCommercial, DefaultContent: "Section content"},
	{Type: SectionTypeList, Label: "List", Icon: "List", Group: SectionGroupLayout, DefaultContent: "Section content"},
	{Type: SectionTypeGrid, Label: "Grid", Icon: "Grid3X3", Group: SectionGroupLayout, DefaultContent: "Section content"},
}

// SectionKinds 返回全部章节类型（副本）
func SectionKinds() []SectionKind {
	out := make([]SectionKind, len(sectionKinds))
	copy(out, sectionKinds)
	return out
}

// LookupSectionKind 按类型查找章节
func LookupSectionKind(t SectionType) (SectionKind, bool) {
	for _, k := range sectionKinds {
		if k.Type == t {
			return k, true
		}
	}
	return SectionKind{}, false
}
