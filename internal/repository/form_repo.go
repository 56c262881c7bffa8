package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/apper-apps/agencyflowapi/internal/model"
)

type formRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewFormRepository 创建文档仓储
func NewFormRepository(db *gorm.DB) FormRepository {
	return &formRepository{db: db, now: time.Now}
}

// likeEscaper 转义 LIKE 通配符，配合 ESCAPE '!' 在 sqlite 和 mysql 上行为一致
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (r *formRepository) List(ctx context.Context, filter model.FormFilter) ([]model.Form, error) {
	var forms []model.Form
	q := r.db.WithContext(ctx).Order("id ASC")
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	if term := strings.TrimSpace(filter.Query); term != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		q = q.Where("(LOWER(name) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", pattern, pattern)
	}
	switch filter.Status {
	case model.StatusActive:
		q = q.Where("is_active = ?", true)
	case model.StatusInactive:
		q = q.Where("is_active = ?", false)
	}
	err := q.Find(&forms).Error
	return forms, err
}

func (r *formRepository) Get(ctx context.Context, id uint) (*model.Form, error) {
	var form model.Form
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&form).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, formNotFound(id)
		}
		return nil, err
	}
	return &form, nil
}

func (r *formRepository) Create(ctx context.Context, doc *model.Form) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID uint
		if err := tx.Model(&model.Form{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return err
		}

		now := r.now()
		doc.ID = maxID + 1
		applyCreateDefaults(doc)
		doc.Submissions = 0
		doc.IsActive = true
		doc.CreatedAt = now
		doc.UpdatedAt = now
		return tx.Create(doc).Error
	})
}

// applyCreateDefaults 缺省的字段、章节和设置补为空列表与默认值
func applyCreateDefaults(doc *model.Form) {
	if doc.Kind == "" {
		doc.Kind = model.KindForm
	}
	if doc.Fields == nil {
		doc.Fields = datatypes.JSONSlice[model.Field]{}
	}
	if doc.Sections == nil {
		doc.Sections = datatypes.JSONSlice[model.Section]{}
	}
	doc.Settings = doc.Settings.WithDefaults(doc.Kind)
	if doc.IsTemplate() {
		doc.Branding = doc.Branding.WithDefaults()
	}
}

func (r *formRepository) Update(ctx context.Context, id uint, doc *model.Form) (*model.Form, error) {
	var existing model.Form
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return formNotFound(id)
			}
			return err
		}

		merge(&existing, doc)
		existing.UpdatedAt = r.now()
		return tx.Save(&existing).Error
	})
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

// merge 覆盖可编辑内容，id、创建时间和提交数以存储为准
func merge(dst, src *model.Form) {
	if src.Kind != "" {
		dst.Kind = src.Kind
	}
	dst.Name = src.Name
	dst.Description = src.Description
	dst.Category = src.Category
	if src.Fields != nil {
		dst.Fields = src.Fields
	}
	if src.Sections != nil {
		dst.Sections = src.Sections
	}
	dst.Branding = src.Branding
	dst.Settings = src.Settings.WithDefaults(dst.Kind)
	if src.Placeholders != nil {
		dst.Placeholders = src.Placeholders
	}
	dst.IsActive = src.IsActive
}

func (r *formRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Form{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return formNotFound(id)
	}
	return nil
}

func (r *formRepository) IncrementSubmissions(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&model.Form{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"submissions": gorm.Expr("submissions + ?", 1),
			"updated_at":  r.now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return formNotFound(id)
	}
	return nil
}
