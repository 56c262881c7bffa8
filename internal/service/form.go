package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"k8s.io/klog/v2"

	"github.com/apper-apps/agencyflowapi/internal/builder"
	"github.com/apper-apps/agencyflowapi/internal/domain"
	"github.com/apper-apps/agencyflowapi/internal/eventbus"
	"github.com/apper-apps/agencyflowapi/internal/model"
	"github.com/apper-apps/agencyflowapi/internal/repository"
)

var (
	// ErrFormNotFound 文档不存在
	ErrFormNotFound = errors.New("form not found")
	// ErrInvalidStatus 列表状态筛选只接受 all、active、inactive
	ErrInvalidStatus = errors.New("invalid status filter")
)

// copySuffix 复制出的文档名称后缀
const copySuffix = " - Copy"

type FormService struct {
	formRepo repository.FormRepository
	subRepo  repository.SubmissionRepository
	bus      *eventbus.FormEventBus
	now      func() time.Time
}

func NewFormService(formRepo repository.FormRepository, subRepo repository.SubmissionRepository, bus *eventbus.FormEventBus) *FormService {
	return &FormService{
		formRepo: formRepo,
		subRepo:  subRepo,
		bus:      bus,
		now:      time.Now,
	}
}

// notFound 把仓储的 NotFound 换成服务层哨兵，其余错误原样返回
func notFound(err error, id uint) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.NotFoundError{Resource: "Form", ID: id, Err: ErrFormNotFound}
	}
	return err
}

// publish 生命周期事件的订阅者失败只记录日志
func (s *FormService) publish(ctx context.Context, event eventbus.FormEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event.Type, event); err != nil {
		klog.Warningf("发布文档事件失败: type=%s, formID=%d, error=%v", event.Type, event.FormID, err)
	}
}

func (s *FormService) List(ctx context.Context, filter model.FormFilter) ([]model.Form, error) {
	if !filter.Status.IsValid() {
		return nil, &domain.ValidationError{
			Message: "status must be one of all, active, inactive",
			Details: []string{"status=" + string(filter.Status)},
			Err:     ErrInvalidStatus,
		}
	}
	return s.formRepo.List(ctx, filter)
}

// Duplicate 把已保存的文档复制为新记录，名称追加后缀，提交数从零开始
func (s *FormService) Duplicate(ctx context.Context, id uint) (*model.Form, error) {
	src, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dup := src.Clone()
	dup.ID = 0
	dup.Name = src.Name + copySuffix
	dup.Submissions = 0
	dup.CreatedAt, dup.UpdatedAt = time.Time{}, time.Time{}
	created, err := s.Create(ctx, dup)
	if err != nil {
		return nil, err
	}
	klog.V(6).Infof("文档已复制: from=%d, to=%d", id, created.ID)
	return created, nil
}

func (s *FormService) Get(ctx context.Context, id uint) (*model.Form, error) {
	doc, err := s.formRepo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, id)
	}
	return doc, nil
}

// Save 未保存的草稿新建，已保存的覆盖更新。保存检查不通过时不访问存储
func (s *FormService) Save(ctx context.Context, doc *model.Form) (*model.Form, error) {
	if doc.ID == 0 {
		return s.Create(ctx, doc)
	}
	return s.Update(ctx, doc.ID, doc)
}

func (s *FormService) Create(ctx context.Context, doc *model.Form) (*model.Form, error) {
	if err := builder.ValidateForSave(doc); err != nil {
		return nil, err
	}
	created := doc.Clone()
	if err := s.formRepo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("create form: %w", err)
	}
	klog.V(6).Infof("文档已创建: id=%d, kind=%s, name=%s", created.ID, created.Kind, created.Name)
	s.publish(ctx, eventbus.FormEvent{Type: eventbus.FormEventCreated, FormID: created.ID, Kind: created.Kind})
	return created, nil
}

func (s *FormService) Update(ctx context.Context, id uint, doc *model.Form) (*model.Form, error) {
	if err := builder.ValidateForSave(doc); err != nil {
		return nil, err
	}
	updated, err := s.formRepo.Update(ctx, id, doc)
	if err != nil {
		return nil, notFound(err, id)
	}
	klog.V(6).Infof("文档已更新: id=%d, name=%s", updated.ID, updated.Name)
	s.publish(ctx, eventbus.FormEvent{Type: eventbus.FormEventUpdated, FormID: updated.ID, Kind: updated.Kind})
	return updated, nil
}

func (s *FormService) Delete(ctx context.Context, id uint) error {
	if err := s.formRepo.Delete(ctx, id); err != nil {
		return notFound(err, id)
	}
	if err := s.subRepo.DeleteByForm(ctx, id); err != nil {
		klog.Warningf("删除提交记录失败: formID=%d, error=%v", id, err)
	}
	klog.V(6).Infof("文档已删除: id=%d", id)
	s.publish(ctx, eventbus.FormEvent{Type: eventbus.FormEventDeleted, FormID: id})
	return nil
}

// SubmitRequest 一次表单提交
type SubmitRequest struct {
	Data      map[string]interface{} `json:"data"`
	IPAddress string                 `json:"-"`
	UserAgent string                 `json:"-"`
}

// Submit 保存提交记录，计数由提交事件的订阅者维护
func (s *FormService) Submit(ctx context.Context, id uint, req SubmitRequest) (*model.Submission, error) {
	doc, err := s.formRepo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, id)
	}

	data := datatypes.JSONMap(req.Data)
	if data == nil {
		data = datatypes.JSONMap{}
	}
	sub := &model.Submission{
		ID:          uuid.NewString(),
		FormID:      doc.ID,
		Data:        data,
		IPAddress:   req.IPAddress,
		UserAgent:   req.UserAgent,
		SubmittedAt: s.now(),
	}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	klog.V(6).Infof("提交已记录: formID=%d, submissionID=%s", doc.ID, sub.ID)

	if s.bus != nil {
		event := eventbus.FormEvent{Type: eventbus.FormEventSubmitted, FormID: doc.ID, Kind: doc.Kind, SubmissionID: sub.ID}
		if err := s.bus.Publish(ctx, event.Type, event); err != nil {
			return sub, fmt.Errorf("count submission: %w", err)
		}
	}
	return sub, nil
}

func (s *FormService) Submissions(ctx context.Context, id uint, limit int) ([]model.Submission, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.subRepo.ListByForm(ctx, id, limit)
}

// FormStats 文档统计
type FormStats struct {
	TotalSubmissions int        `json:"totalSubmissions"`
	LastSubmission   *time.Time `json:"lastSubmission"`
	FieldCount       int        `json:"fieldCount"`
	SectionCount     int        `json:"sectionCount"`
}

func (s *FormService) Stats(ctx context.Context, id uint) (*FormStats, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	last, err := s.subRepo.LatestByForm(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("latest submission: %w", err)
	}
	return &FormStats{
		TotalSubmissions: doc.Submissions,
		LastSubmission:   last,
		FieldCount:       len(doc.Fields),
		SectionCount:     len(doc.Sections),
	}, nil
}
