package builder

import (
	"errors"
	"fmt"

	"gorm.io/datatypes"

	"github.com/apper-apps/agencyflowapi/internal/model"
)

// ErrPrebuiltNotFound 模板库中不存在该模板
var ErrPrebuiltNotFound = errors.New("prebuilt template not found")

// CategoryAll 模板库筛选中表示全部分类
const CategoryAll model.Category = "all"

// Prebuilt 模板库中的预置模板
type Prebuilt struct {
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Category    model.Category  `json:"category"`
	Description string          `json:"description"`
	Preview     string          `json:"preview"`
	Sections    []model.Section `json:"sections"`
	Branding    model.Branding  `json:"branding"`
}

func prebuiltSections(specs ...[3]string) []model.Section {
	out := make([]model.Section, 0, len(specs))
	for i, s := range specs {
		t := model.SectionType(s[2])
		content := ""
		if kind, ok := model.LookupSectionKind(t); ok {
			content = kind.DefaultContent
		}
		out = append(out, model.Section{ID: s[0], Name: s[1], Type: t, Required: true, Content: content, Order: i + 1})
	}
	return out
}

var library = []Prebuilt{
	{
		Key:         "web-design-basic",
		Name:        "Basic Website Design",
		Category:    model.CategoryWebDesign,
		Description: "Professional website design proposal with timeline and deliverables",
		Preview:     "/templates/web-design-basic.jpg",
		Sections: optional(prebuiltSections(
			[3]string{"cover", "Cover Page", "cover"},
			[3]string{"overview", "Project Overview", "content"},
			[3]string{"scope", "Scope of Work", "list"},
			[3]string{"timeline", "Project Timeline", "timeline"},
			[3]string{"investment", "Investment", "pricing"},
			[3]string{"terms", "Terms & Conditions", "content"},
		), "terms"),
		Branding: model.Branding{PrimaryColor: "#4F46E5", SecondaryColor: "#7C3AED", FontFamily: "Inter", LogoPosition: "top-left"},
	},
	{
		Key:         "marketing-campaign",
		Name:        "Digital Marketing Campaign",
		Category:    model.CategoryMarketing,
		Description: "Comprehensive digital marketing proposal with strategy and ROI projections",
		Preview:     "/templates/marketing-campaign.jpg",
		Sections: prebuiltSections(
			[3]string{"cover", "Cover Page", "cover"},
			[3]string{"situation", "Current Situation", "content"},
			[3]string{"strategy", "Marketing Strategy", "content"},
			[3]string{"channels", "Marketing Channels", "grid"},
			[3]string{"timeline", "Campaign Timeline", "timeline"},
			[3]string{"roi", "Expected ROI", "metrics"},
			[3]string{"investment", "Investment", "pricing"},
		),
		Branding: model.Branding{PrimaryColor: "#F59E0B", SecondaryColor: "#EF4444", FontFamily: "Inter", LogoPosition: "center"},
	},
	{
		Key:         "business-consulting",
		Name:        "Business Consulting",
		Category:    model.CategoryConsulting,
		Description: "Strategic business consulting proposal with analysis and recommendations",
		Preview:     "/templates/business-consulting.jpg",
		Sections: prebuiltSections(
			[3]string{"cover", "Cover Page", "cover"},
			[3]string{"executive", "Executive Summary", "content"},
			[3]string{"analysis", "Current State Analysis", "content"},
			[3]string{"recommendations", "Recommendations", "list"},
			[3]string{"implementation", "Implementation Plan", "timeline"},
			[3]string{"investment", "Investment", "pricing"},
		),
		Branding: model.Branding{PrimaryColor: "#059669", SecondaryColor: "#0891B2", FontFamily: "Inter", LogoPosition: "top-right"},
	},
}

// optional 把指定 id 的章节标记为非必需
func optional(sections []model.Section, ids ...string) []model.Section {
	for i := range sections {
		for _, id := range ids {
			if sections[i].ID == id {
				sections[i].Required = false
			}
		}
	}
	return sections
}

// LibraryCategory 模板库分类筛选项
type LibraryCategory struct {
	ID   model.Category `json:"id"`
	Name string         `json:"name"`
	Icon string         `json:"icon"`
}

// LibraryCategories 返回筛选项，第一项为全部
func LibraryCategories() []LibraryCategory {
	out := []LibraryCategory{{ID: CategoryAll, Name: "All Templates", Icon: "Grid3X3"}}
	for _, c := range model.Categories {
		out = append(out, LibraryCategory{ID: c.ID, Name: c.Name, Icon: c.Icon})
	}
	return out
}

// Library 按分类列出预置模板，空或 all 返回全部
func Library(category model.Category) []Prebuilt {
	out := make([]Prebuilt, 0, len(library))
	for _, p := range library {
		if category == "" || category == CategoryAll || p.Category == category {
			out = append(out, p.clone())
		}
	}
	return out
}

func (p Prebuilt) clone() Prebuilt {
	p.Sections = append([]model.Section(nil), p.Sections...)
	return p
}

// LookupPrebuilt 按 key 查找预置模板
func LookupPrebuilt(key string) (Prebuilt, bool) {
	for _, p := range library {
		if p.Key == key {
			return p.clone(), true
		}
	}
	return Prebuilt{}, false
}

// FromPrebuilt 从预置模板创建未保存的草稿：名称加 " - Copy"，
// 使用默认占位符和模板设置
func FromPrebuilt(key string) (*model.Form, error) {
	p, ok := LookupPrebuilt(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPrebuiltNotFound, key)
	}

	doc := NewTemplate()
	doc.Name = p.Name + " - Copy"
	doc.Description = p.Description
	doc.Category = p.Category
	doc.Sections = datatypes.JSONSlice[model.Section](p.Sections)
	doc.Branding = p.Branding.WithDefaults()
	doc.Branding.Letterhead = true
	return doc, nil
}
