package repository

import (
	"context"
	"errors"
	"time"

	"github.com/apper-apps/agencyflowapi/internal/domain"
	"github.com/apper-apps/agencyflowapi/internal/model"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

func formNotFound(id uint) error {
	return &domain.NotFoundError{Resource: "Form", ID: id, Err: ErrNotFound}
}

// FormRepository 表单与模板文档的存储
type FormRepository interface {
	// List 按 id 升序列出符合筛选条件的文档
	List(ctx context.Context, filter model.FormFilter) ([]model.Form, error)
	// Get 不存在时返回 NotFound
	Get(ctx context.Context, id uint) (*model.Form, error)
	// Create 分配 id（当前最大值加一）和时间戳，并补全缺省值
	Create(ctx context.Context, doc *model.Form) error
	// Update 把文档的可编辑内容合并到已有记录，保留 id、创建时间和提交数
	Update(ctx context.Context, id uint, doc *model.Form) (*model.Form, error)
	Delete(ctx context.Context, id uint) error
	// IncrementSubmissions 提交数加一并刷新更新时间
	IncrementSubmissions(ctx context.Context, id uint) error
}

// SubmissionRepository 提交记录的存储
type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.Submission) error
	ListByForm(ctx context.Context, formID uint, limit int) ([]model.Submission, error)
	CountByForm(ctx context.Context, formID uint) (int64, error)
	// LatestByForm 最近一次提交时间，没有提交时返回 nil
	LatestByForm(ctx context.Context, formID uint) (*time.Time, error)
	DeleteByForm(ctx context.Context, formID uint) error
}
