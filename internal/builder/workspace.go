package builder

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/apper-apps/agencyflowapi/internal/domain"
	"github.com/apper-apps/agencyflowapi/internal/formkit"
	"github.com/apper-apps/agencyflowapi/internal/model"
)

// ErrDraftNotFound 令牌对应的草稿不存在或已关闭
var ErrDraftNotFound = errors.New("draft not found")

// Workspace 按令牌保存打开的草稿，每个令牌对应一个正在编辑的文档
type Workspace struct {
	mu        sync.RWMutex
	drafts    map[string]*Draft
	registry  *formkit.Registry
	submitter formkit.Submitter
}

// NewWorkspace 创建工作区；submitter 为 nil 时预览提交使用默认延迟
func NewWorkspace(registry *formkit.Registry, submitter formkit.Submitter) *Workspace {
	return &Workspace{
		drafts:    make(map[string]*Draft),
		registry:  registry,
		submitter: submitter,
	}
}

// Open 打开文档并返回新令牌
func (w *Workspace) Open(doc *model.Form) (string, *Draft) {
	draft := NewDraft(doc, w.registry, formkit.NewPreview(w.submitter))
	token := uuid.NewString()

	w.mu.Lock()
	w.drafts[token] = draft
	w.mu.Unlock()
	return token, draft
}

// Get 按令牌获取草稿
func (w *Workspace) Get(token string) (*Draft, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	d, ok := w.drafts[token]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "Draft", ID: token, Err: ErrDraftNotFound}
	}
	return d, nil
}

// Close 关闭草稿，未知令牌忽略
func (w *Workspace) Close(token string) {
	w.mu.Lock()
	delete(w.drafts, token)
	w.mu.Unlock()
}

// Len 打开的草稿数量
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.drafts)
}
