package repository

import (
	"context"
	"time"

	"k8s.io/klog/v2"

	"github.com/apper-apps/agencyflowapi/internal/model"
)

// Latency 每类操作的模拟延迟，零值表示不等待
type Latency struct {
	List   time.Duration
	Get    time.Duration
	Create time.Duration
	Update time.Duration
	Delete time.Duration
	Submit time.Duration
}

// IsZero 是否所有延迟都为零
func (l Latency) IsZero() bool {
	return l == Latency{}
}

// wait 等待 d；期间 ctx 取消则返回 ctx 错误，此时不会触达存储
func wait(ctx context.Context, op string, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		klog.V(6).Infof("存储操作 %s 在模拟延迟中被取消: %v", op, ctx.Err())
		return ctx.Err()
	}
}

type latencyFormRepository struct {
	inner   FormRepository
	latency Latency
}

// WithLatency 为文档仓储加上固定延迟
func WithLatency(inner FormRepository, latency Latency) FormRepository {
	if latency.IsZero() {
		return inner
	}
	return &latencyFormRepository{inner: inner, latency: latency}
}

func (r *latencyFormRepository) List(ctx context.Context, filter model.FormFilter) ([]model.Form, error) {
	if err := wait(ctx, "list", r.latency.List); err != nil {
		return nil, err
	}
	return r.inner.List(ctx, filter)
}

func (r *latencyFormRepository) Get(ctx context.Context, id uint) (*model.Form, error) {
	if err := wait(ctx, "get", r.latency.Get); err != nil {
		return nil, err
	}
	return r.inner.Get(ctx, id)
}

func (r *latencyFormRepository) Create(ctx context.Context, doc *model.Form) error {
	if err := wait(ctx, "create", r.latency.Create); err != nil {
		return err
	}
	return r.inner.Create(ctx, doc)
}

func (r *latencyFormRepository) Update(ctx context.Context, id uint, doc *model.Form) (*model.Form, error) {
	if err := wait(ctx, "update", r.latency.Update); err != nil {
		return nil, err
	}
	return r.inner.Update(ctx, id, doc)
}

func (r *latencyFormRepository) Delete(ctx context.Context, id uint) error {
	if err := wait(ctx, "delete", r.latency.Delete); err != nil {
		return err
	}
	return r.inner.Delete(ctx, id)
}

func (r *latencyFormRepository) IncrementSubmissions(ctx context.Context, id uint) error {
	if err := wait(ctx, "submit", r.latency.Submit); err != nil {
		return err
	}
	return r.inner.IncrementSubmissions(ctx, id)
}
