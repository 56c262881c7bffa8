package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/apper-apps/agencyflowapi/internal/builder"
	"github.com/apper-apps/agencyflowapi/internal/domain"
	"github.com/apper-apps/agencyflowapi/internal/embedcode"
	"github.com/apper-apps/agencyflowapi/internal/formkit"
	"github.com/apper-apps/agencyflowapi/internal/model"
	"github.com/apper-apps/agencyflowapi/internal/service"
)

const htmlContentType = "text/html; charset=utf-8"

// BuilderHandler 服务端渲染的构建器页面。
// 每个动作都是普通表单 POST：成功后 303 跳回页面，失败时带提示重新渲染
type BuilderHandler struct {
	workspace *builder.Workspace
	forms     *service.FormService
	embed     *embedcode.Generator
}

// NewBuilderHandler 创建构建器处理器
func NewBuilderHandler(workspace *builder.Workspace, forms *service.FormService, embed *embedcode.Generator) *BuilderHandler {
	return &BuilderHandler{workspace: workspace, forms: forms, embed: embed}
}

// RegisterRoutes 注册构建器路由
func (h *BuilderHandler) RegisterRoutes(r gin.IRouter) {
	drafts := r.Group("/builder/drafts")
	{
		drafts.POST("", h.Open)
		drafts.POST("/load/:id", h.Load)
		drafts.GET("/:token", h.Show)

		drafts.POST("/:token/fields", h.action(h.addField))
		drafts.POST("/:token/fields/reorder", h.action(h.reorderFields))
		drafts.POST("/:token/fields/:fid", h.action(h.updateField))
		drafts.POST("/:token/fields/:fid/delete", h.action(h.removeField))
		drafts.POST("/:token/fields/:fid/options", h.action(h.editOptions))
		drafts.POST("/:token/select", h.action(h.selectItem))
		drafts.POST("/:token/form", h.action(h.updateDocument))

		drafts.POST("/:token/sections", h.action(h.addSection))
		drafts.POST("/:token/sections/reorder", h.action(h.reorderSections))
		drafts.POST("/:token/sections/select", h.action(h.selectItem))
		drafts.POST("/:token/sections/:sid", h.action(h.updateSection))
		drafts.POST("/:token/sections/:sid/delete", h.action(h.removeSection))

		drafts.POST("/:token/save", h.Save)
		drafts.GET("/:token/preview", h.Preview)
		drafts.POST("/:token/preview/submit", h.SubmitPreview)
		drafts.POST("/:token/preview/clear", h.ClearPreview)
		drafts.GET("/:token/embed", h.Embed)
		drafts.GET("/:token/log", h.Log)
		drafts.POST("/:token/close", h.Close)
	}
}

func actionsFor(token string) formkit.Actions {
	return formkit.Actions{Base: "/builder/drafts/" + token}
}

func writeHTML(c *gin.Context, status int, node formkit.Node) {
	c.Data(status, htmlContentType, []byte(formkit.RenderString(node)))
}

// lookup 取出令牌对应的草稿，不存在时直接渲染 404 页面
func (h *BuilderHandler) lookup(c *gin.Context) (string, *builder.Draft, bool) {
	token := c.Param("token")
	draft, err := h.workspace.Get(token)
	if err != nil {
		writeHTML(c, statusFor(err), formkit.NoticePage("Not Found", formkit.NoticeFromError(err)))
		c.Abort()
		return "", nil, false
	}
	return token, draft, true
}

func (h *BuilderHandler) renderPage(c *gin.Context, status int, token string, draft *builder.Draft, notice *formkit.Notice) {
	writeHTML(c, status, formkit.Page(formkit.PageData{
		Doc:        draft.Doc(),
		SelectedID: draft.Selected(),
		Notice:     notice,
		Actions:    actionsFor(token),
		Registry:   draft.Registry(),
	}))
}

// action 包装构建器动作：先解析表单，再执行操作
func (h *BuilderHandler) action(run func(c *gin.Context, draft *builder.Draft) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, draft, ok := h.lookup(c)
		if !ok {
			return
		}
		if err := c.Request.ParseForm(); err != nil {
			h.renderPage(c, http.StatusBadRequest, token, draft, &formkit.Notice{Level: formkit.NoticeError, Message: err.Error()})
			return
		}
		if err := run(c, draft); err != nil {
			klog.V(6).Infof("构建器动作失败: path=%s, error=%v", c.FullPath(), err)
			h.renderPage(c, statusFor(err), token, draft, formkit.NoticeFromError(err))
			return
		}
		c.Redirect(http.StatusSeeOther, actionsFor(token).To())
	}
}

func formInt(c *gin.Context, key string) (int, error) {
	v, err := strconv.Atoi(c.Request.PostForm.Get(key))
	if err != nil {
		return 0, &domain.ValidationError{Message: "invalid " + key, Err: err}
	}
	return v, nil
}

// openDraft 打开草稿并跳转到页面
func (h *BuilderHandler) openDraft(c *gin.Context, doc *model.Form) {
	token, _ := h.workspace.Open(doc)
	klog.V(6).Infof("打开草稿: token=%s, kind=%s, id=%d", token, doc.Kind, doc.ID)
	c.Redirect(http.StatusSeeOther, actionsFor(token).To())
}

// Open 新建草稿，prebuilt 指定时从模板库复制
func (h *BuilderHandler) Open(c *gin.Context) {
	if key := c.PostForm("prebuilt"); key != "" {
		doc, err := builder.FromPrebuilt(key)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.openDraft(c, doc)
		return
	}
	h.openDraft(c, builder.NewDocument(model.Kind(c.PostForm("kind"))))
}

// Load 从存储加载文档为草稿
func (h *BuilderHandler) Load(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	doc, err := h.forms.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.openDraft(c, doc)
}

// Show 渲染构建器页面
func (h *BuilderHandler) Show(c *gin.Context) {
	token, draft, ok := h.lookup(c)
	if !ok {
		return
	}
	var notice *formkit.Notice
	if msg := savedMessage(draft.Doc(), c.Query("notice")); msg != "" {
		notice = &formkit.Notice{Level: formkit.NoticeSuccess, Message: msg}
	}
	h.renderPage(c, http.StatusOK, token, draft, notice)
}

const (
	noticeCreated = "created"
	noticeUpdated = "updated"
)

// savedMessage 按保存结果给出提示，notice 不认识时返回空
func savedMessage(doc *model.Form, notice string) string {
	noun := "Form"
	if doc.IsTemplate() {
		noun = "Template"
	}
	switch notice {
	case noticeCreated:
		return noun + " created successfully"
	case noticeUpdated:
		return noun + " updated successfully"
	}
	return ""
}

func (h *BuilderHandler) addField(c *gin.Context, draft *builder.Draft) error {
	_, err := draft.AddField(model.FieldType(c.Request.PostForm.Get("type")))
	return err
}

func (h *BuilderHandler) reorderFields(c *gin.Context, draft *builder.Draft) error {
	from, err := formInt(c, "from")
	if err != nil {
		return err
	}
	to, err := formInt(c, "to")
	if err != nil {
		return err
	}
	return draft.ReorderFields(from, to)
}

// field 当前文档中的字段
func field(draft *builder.Draft, id string) (model.Field, error) {
	doc := draft.Doc()
	i := doc.FieldByID(id)
	if i < 0 {
		return model.Field{}, &domain.NotFoundError{Resource: "Field", ID: id, Err: builder.ErrFieldNotFound}
	}
	return doc.Fields[i], nil
}

func (h *BuilderHandler) updateField(c *gin.Context, draft *builder.Draft) error {
	f, err := field(draft, c.Param("fid"))
	if err != nil {
		return err
	}
	return formkit.ApplyFieldForm(f, c.Request.PostForm, draft.Callbacks())
}

func (h *BuilderHandler) removeField(c *gin.Context, draft *builder.Draft) error {
	return draft.RemoveField(c.Param("fid"))
}

func (h *BuilderHandler) editOptions(c *gin.Context, draft *builder.Draft) error {
	f, err := field(draft, c.Param("fid"))
	if err != nil {
		return err
	}
	index := -1
	if v := c.Query("index"); v != "" {
		if index, err = strconv.Atoi(v); err != nil {
			return &domain.ValidationError{Message: "invalid index", Err: err}
		}
	}
	return formkit.ApplyOptionForm(f, formkit.OptionOp(c.Query("op")), index, c.Request.PostForm, draft.Callbacks())
}

func (h *BuilderHandler) selectItem(c *gin.Context, draft *builder.Draft) error {
	return draft.Select(c.Request.PostForm.Get("id"))
}

func (h *BuilderHandler) updateDocument(c *gin.Context, draft *builder.Draft) error {
	return formkit.ApplyDocumentForm(c.Request.PostForm, draft.Doc().IsTemplate(), draft.Callbacks())
}

func (h *BuilderHandler) addSection(c *gin.Context, draft *builder.Draft) error {
	_, err := draft.AddSection(model.SectionType(c.Request.PostForm.Get("type")))
	return err
}

func (h *BuilderHandler) reorderSections(c *gin.Context, draft *builder.Draft) error {
	from, err := formInt(c, "from")
	if err != nil {
		return err
	}
	to, err := formInt(c, "to")
	if err != nil {
		return err
	}
	return draft.ReorderSections(from, to)
}

func (h *BuilderHandler) updateSection(c *gin.Context, draft *builder.Draft) error {
	doc := draft.Doc()
	i := doc.SectionByID(c.Param("sid"))
	if i < 0 {
		return &domain.NotFoundError{Resource: "Section", ID: c.Param("sid"), Err: builder.ErrSectionNotFound}
	}
	return formkit.ApplySectionForm(doc.Sections[i], c.Request.PostForm, draft.Callbacks())
}

func (h *BuilderHandler) removeSection(c *gin.Context, draft *builder.Draft) error {
	return draft.RemoveSection(c.Param("sid"))
}

// Save 保存草稿，成功后带提示跳回页面
func (h *BuilderHandler) Save(c *gin.Context) {
	token, draft, ok := h.lookup(c)
	if !ok {
		return
	}
	notice := noticeUpdated
	if draft.Doc().ID == 0 {
		notice = noticeCreated
	}
	saved, err := draft.Save(c.Request.Context(), h.forms)
	if err != nil {
		h.renderPage(c, statusFor(err), token, draft, formkit.NoticeFromError(err))
		return
	}
	klog.V(6).Infof("草稿已保存: token=%s, id=%d, %s", token, saved.ID, notice)
	c.Redirect(http.StatusSeeOther, actionsFor(token).To()+"?notice="+notice)
}

// Preview 渲染可填写的预览
func (h *BuilderHandler) Preview(c *gin.Context) {
	token, draft, ok := h.lookup(c)
	if !ok {
		return
	}
	writeHTML(c, http.StatusOK, formkit.PreviewPage(draft.Doc(), draft.Preview(), nil, actionsFor(token)))
}

// SubmitPreview 用提交的整张表单替换答案后模拟提交
func (h *BuilderHandler) SubmitPreview(c *gin.Context) {
	token, draft, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc := draft.Doc()
	preview := draft.Preview()
	preview.Fill(doc, c.Request.PostForm)

	status := http.StatusOK
	var notice *formkit.Notice
	msg, err := preview.Submit(c.Request.Context(), doc)
	if err != nil {
		status = statusFor(err)
		notice = formkit.NoticeFromError(err)
	} else {
		notice = &formkit.Notice{Level: formkit.NoticeSuccess, Message: msg}
	}
	writeHTML(c, status, formkit.PreviewPage(doc, preview, notice, actionsFor(token)))
}

// ClearPreview 清空预览答案
func (h *BuilderHandler) ClearPreview(c *gin.Context) {
	token, draft, ok := h.lookup(c)
	if !ok {
		return
	}
	draft.Preview().Clear()
	c.Redirect(http.StatusSeeOther, actionsFor(token).To("preview"))
}

// Embed 返回嵌入代码文本；未保存的草稿没有嵌入代码
// Close 丢弃草稿并回到同类文档列表，未保存的编辑随之丢弃
func (h *BuilderHandler) Close(c *gin.Context) {
	token, draft, ok := h.lookup(c)
	if !ok {
		return
	}
	kind := draft.Doc().Kind
	h.workspace.Close(token)
	klog.V(6).Infof("草稿已关闭: token=%s, 剩余 %d", token, h.workspace.Len())
	c.Redirect(http.StatusSeeOther, "/api/forms?kind="+string(kind))
}

func (h *BuilderHandler) Embed(c *gin.Context) {
	_, draft, ok := h.lookup(c)
	if !ok {
		return
	}
	kind := embedcode.Kind(c.DefaultQuery("kind", string(embedcode.KindInline)))
	id := draft.Doc().ID
	if id == 0 {
		c.String(http.StatusUnprocessableEntity, embedcode.ErrUnsavedDocument.Error())
		return
	}
	// 嵌入代码对应已保存的版本，未保存的编辑不进入代码
	stored, err := h.forms.Get(c.Request.Context(), id)
	if err != nil {
		c.String(statusFor(err), err.Error())
		return
	}
	code, err := h.embed.Generate(stored, kind)
	if err != nil {
		c.String(http.StatusUnprocessableEntity, err.Error())
		return
	}
	c.String(http.StatusOK, code)
}

// Log 变更日志
func (h *BuilderHandler) Log(c *gin.Context) {
	_, draft, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected": draft.Selected(), "mutations": draft.Log()})
}
