package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/apper-apps/agencyflowapi/internal/model"
)

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository 创建提交记录仓储
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, sub *model.Submission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// ListByForm 按提交时间倒序，limit <= 0 表示不限制
func (r *submissionRepository) ListByForm(ctx context.Context, formID uint, limit int) ([]model.Submission, error) {
	var subs []model.Submission
	q := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("submitted_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&subs).Error
	return subs, err
}

func (r *submissionRepository) CountByForm(ctx context.Context, formID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("form_id = ?", formID).
		Count(&count).Error
	return count, err
}

func (r *submissionRepository) LatestByForm(ctx context.Context, formID uint) (*time.Time, error) {
	var subs []model.Submission
	err := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("submitted_at DESC").
		Limit(1).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, nil
	}
	return &subs[0].SubmittedAt, nil
}

func (r *submissionRepository) DeleteByForm(ctx context.Context, formID uint) error {
	return r.db.WithContext(ctx).Where("form_id = ?", formID).Delete(&model.Submission{}).Error
}
