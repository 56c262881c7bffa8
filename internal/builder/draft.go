package builder

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"k8s.io/klog/v2"

	"github.com/apper-apps/agencyflowapi/internal/domain"
	"github.com/apper-apps/agencyflowapi/internal/formkit"
	"github.com/apper-apps/agencyflowapi/internal/model"
)

// 变更日志中的操作名
const (
	OpAddField        = "addField"
	OpUpdateField     = "updateField"
	OpRemoveField     = "removeField"
	OpReorderFields   = "reorder"
	OpUpdateDocument  = "updateDocument"
	OpUpdateSettings  = "updateSettings"
	OpUpdateBranding  = "updateBranding"
	OpAddSection      = "addSection"
	OpUpdateSection   = "updateSection"
	OpRemoveSection   = "removeSection"
	OpReorderSections = "reorderSections"
	OpSave            = "save"
)

// Mutation 变更日志的一条记录，只记录成功的操作
type Mutation struct {
	Seq    int       `json:"seq"`
	Op     string    `json:"op"`
	Target string    `json:"target,omitempty"`
	At     time.Time `json:"at"`
}

// Saver 持久化草稿，由 service 层实现
type Saver interface {
	Save(ctx context.Context, doc *model.Form) (*model.Form, error)
}

// Draft 构建器中处于编辑状态的唯一文档。
// 所有修改都经过具名操作，按调用顺序生效并写入变更日志
type Draft struct {
	mu       sync.Mutex
	doc      *model.Form
	selected string
	log      []Mutation
	registry *formkit.Registry
	preview  *formkit.Preview
	now      func() time.Time
}

// NewDraft 基于文档创建草稿，文档会被复制
func NewDraft(doc *model.Form, registry *formkit.Registry, preview *formkit.Preview) *Draft {
	if preview == nil {
		preview = formkit.NewPreview(nil)
	}
	return &Draft{
		doc:      doc.Clone(),
		registry: registry,
		preview:  preview,
		now:      time.Now,
	}
}

// record 调用方需持有锁
func (d *Draft) record(op, target string, next *model.Form) {
	d.doc = next
	d.log = append(d.log, Mutation{Seq: len(d.log) + 1, Op: op, Target: target, At: d.now()})
}

// Doc 返回当前文档的副本
func (d *Draft) Doc() *model.Form {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Clone()
}

// Selected 当前选中的字段或章节 id，空表示未选中
func (d *Draft) Selected() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selected
}

// Log 返回变更日志副本
func (d *Draft) Log() []Mutation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Mutation(nil), d.log...)
}

// Registry 字段与章节类型注册表
func (d *Draft) Registry() *formkit.Registry {
	return d.registry
}

// Preview 预览的答案状态
func (d *Draft) Preview() *formkit.Preview {
	return d.preview
}

// Select 选中字段或章节，空 id 清除选中
func (d *Draft) Select(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if id == "" {
		d.selected = ""
		return nil
	}
	if d.doc.FieldByID(id) < 0 && d.doc.SectionByID(id) < 0 {
		if d.doc.IsTemplate() {
			return sectionNotFound(id)
		}
		return fieldNotFound(id)
	}
	d.selected = id
	return nil
}

// AddField 追加指定类型的默认字段，不改变选中状态
func (d *Draft) AddField(t model.FieldType) (model.Field, error) {
	f, err := d.registry.CreateDefault(t)
	if err != nil {
		return model.Field{}, &domain.ValidationError{Message: err.Error(), Err: err}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record(OpAddField, f.ID, AddField(d.doc, f))
	return f, nil
}

// UpdateField 按 id 更新字段
func (d *Draft) UpdateField(id string, patch model.FieldPatch) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	next, err := UpdateField(d.doc, id, patch)
	if err != nil {
		return err
	}
	d.record(OpUpdateField, id, next)
	return nil
}

// RemoveField 删除字段，删除的是选中字段时清除选中
func (d *Draft) RemoveField(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	next, err := RemoveField(d.doc, id)
	if err != nil {
		return err
	}
	d.record(OpRemoveField, id, next)
	if d.selected == id {
		d.selected = ""
	}
	return nil
}

// ReorderFields 移动字段位置
func (d *Draft) ReorderFields(from, to int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	next, err := Reorder(d.doc, from, to)
	if err != nil {
		return err
	}
	d.record(OpReorderFields, strconv.Itoa(from)+"->"+strconv.Itoa(to), next)
	return nil
}

// UpdateDocument 对文档执行更新函数
func (d *Draft) UpdateDocument(update func(*model.Form)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record(OpUpdateDocument, "", UpdateDocument(d.doc, update))
	return nil
}

// UpdateSettings 应用设置补丁
func (d *Draft) UpdateSettings(patch model.SettingsPatch) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record(OpUpdateSettings, "", UpdateSettings(d.doc, patch))
}

// UpdateBranding 应用品牌补丁
func (d *Draft) UpdateBranding(patch model.BrandingPatch) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record(OpUpdateBranding, "", UpdateBranding(d.doc, patch))
}

// AddSection 追加指定类型的章节并选中它
func (d *Draft) AddSection(t model.SectionType) (model.Section, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, err := d.registry.CreateDefaultSection(t, len(d.doc.Sections)+1)
	if err != nil {
		return model.Section{}, &domain.ValidationError{Message: err.Error(), Err: err}
	}
	d.record(OpAddSection, s.ID, AddSection(d.doc, s))
	d.selected = s.ID
	return s, nil
}

// UpdateSection 按 id 更新章节
func (d *Draft) UpdateSection(id string, patch model.SectionPatch) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	next, err := UpdateSection(d.doc, id, patch)
	if err != nil {
		return err
	}
	d.record(OpUpdateSection, id, next)
	return nil
}

// RemoveSection 删除章节，删除的是选中章节时清除选中
func (d *Draft) RemoveSection(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	next, err := RemoveSection(d.doc, id)
	if err != nil {
		return err
	}
	d.record(OpRemoveSection, id, next)
	if d.selected == id {
		d.selected = ""
	}
	return nil
}

// ReorderSections 移动章节位置
func (d *Draft) ReorderSections(from, to int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	next, err := ReorderSections(d.doc, from, to)
	if err != nil {
		return err
	}
	d.record(OpReorderSections, strconv.Itoa(from)+"->"+strconv.Itoa(to), next)
	return nil
}

// Callbacks 编辑面板使用的回调，全部落到草稿的具名操作上
func (d *Draft) Callbacks() formkit.EditorCallbacks {
	return formkit.EditorCallbacks{
		OnFieldUpdate:   d.UpdateField,
		OnSectionUpdate: d.UpdateSection,
		OnFormUpdate:    d.UpdateDocument,
	}
}

// Save 先做保存检查，通过后交给 saver；失败时文档保持不变
func (d *Draft) Save(ctx context.Context, saver Saver) (*model.Form, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := ValidateForSave(d.doc); err != nil {
		klog.V(6).Infof("草稿保存被拒绝: %v", err)
		return nil, err
	}
	saved, err := saver.Save(ctx, d.doc.Clone())
	if err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	d.record(OpSave, strconv.FormatUint(uint64(saved.ID), 10), saved.Clone())
	return saved, nil
}
