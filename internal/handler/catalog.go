package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apper-apps/agencyflowapi/internal/builder"
	"github.com/apper-apps/agencyflowapi/internal/embedcode"
	"github.com/apper-apps/agencyflowapi/internal/formkit"
	"github.com/apper-apps/agencyflowapi/internal/model"
)

// CatalogHandler 字段类型、章节类型、主题和模板库等只读目录
type CatalogHandler struct {
	registry *formkit.Registry
}

func NewCatalogHandler(registry *formkit.Registry) *CatalogHandler {
	return &CatalogHandler{registry: registry}
}

func (h *CatalogHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/field-types", h.FieldTypes)
	api.GET("/section-types", h.SectionTypes)
	api.GET("/templates/library", h.Library)
	api.GET("/themes/:name", h.Theme)
	api.GET("/embed-kinds", h.EmbedKinds)
}

// FieldTypes 字段类型，可按 group 过滤
func (h *CatalogHandler) FieldTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.ListTypes(model.FieldGroup(c.Query("group"))))
}

func (h *CatalogHandler) SectionTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.ListSectionTypes())
}

// Library 模板库，category 为空或 all 时返回全部
func (h *CatalogHandler) Library(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": builder.LibraryCategories(),
		"templates":  builder.Library(model.Category(c.Query("category"))),
	})
}

// Theme 主题样式规则，未知主题返回默认规则
func (h *CatalogHandler) Theme(c *gin.Context) {
	c.JSON(http.StatusOK, formkit.ResolveTheme(model.Theme(c.Param("name"))))
}

func (h *CatalogHandler) EmbedKinds(c *gin.Context) {
	c.JSON(http.StatusOK, embedcode.Kinds)
}
