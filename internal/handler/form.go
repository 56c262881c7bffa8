package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/apper-apps/agencyflowapi/internal/embedcode"
	"github.com/apper-apps/agencyflowapi/internal/model"
	"github.com/apper-apps/agencyflowapi/internal/service"
)

type FormHandler struct {
	service *service.FormService
	embed   *embedcode.Generator
}

// NewFormHandler 创建表单处理器
func NewFormHandler(service *service.FormService, embed *embedcode.Generator) *FormHandler {
	return &FormHandler{service: service, embed: embed}
}

// RegisterRoutes 注册表单相关路由
func (h *FormHandler) RegisterRoutes(api *gin.RouterGroup) {
	forms := api.Group("/forms")
	{
		forms.GET("", h.List)
		forms.POST("", h.Create)
		forms.GET("/:id", h.Get)
		forms.PUT("/:id", h.Update)
		forms.DELETE("/:id", h.Delete)
		forms.POST("/:id/duplicate", h.Duplicate)
		forms.GET("/:id/embed-code", h.EmbedCode)
		forms.POST("/:id/submissions", h.Submit)
		forms.GET("/:id/submissions", h.Submissions)
		forms.GET("/:id/stats", h.Stats)
	}
}

// List 列出文档，可按 kind 过滤
func (h *FormHandler) List(c *gin.Context) {
	filter := model.FormFilter{
		Kind:   model.Kind(c.Query("kind")),
		Query:  c.Query("q"),
		Status: model.Status(c.Query("status")),
	}
	forms, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, forms)
}

// Get 获取单个文档
// Duplicate 复制为新文档，返回 201 和新记录
func (h *FormHandler) Duplicate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	dup, err := h.service.Duplicate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dup)
}

func (h *FormHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	doc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Create 创建文档
func (h *FormHandler) Create(c *gin.Context) {
	var doc model.Form
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc.ID = 0
	if doc.Kind == "" {
		doc.Kind = model.KindForm
	}
	created, err := h.service.Create(c.Request.Context(), &doc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update 把请求体合并到已有文档上后保存
func (h *FormHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	existing, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := c.ShouldBindJSON(existing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.service.Update(c.Request.Context(), id, existing)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete 删除文档
func (h *FormHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// EmbedCode 生成嵌入代码，未知 kind 返回空代码
func (h *FormHandler) EmbedCode(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	doc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	kind := embedcode.Kind(c.DefaultQuery("kind", string(embedcode.KindInline)))
	code, err := h.embed.Generate(doc, kind)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"kind": kind, "code": code})
}

// Submit 记录一次提交
func (h *FormHandler) Submit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.IPAddress = c.ClientIP()
	req.UserAgent = c.Request.UserAgent()

	sub, err := h.service.Submit(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// Submissions 提交记录列表
func (h *FormHandler) Submissions(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	subs, err := h.service.Submissions(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// Stats 文档统计
func (h *FormHandler) Stats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	stats, err := h.service.Stats(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
