package subscriber

import (
	"context"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/apper-apps/agencyflowapi/internal/eventbus"
)

// FormEventSubscriber 订阅文档生命周期事件，负责维护提交计数
type FormEventSubscriber struct {
	counter submissionCounter
}

type submissionCounter interface {
	IncrementSubmissions(ctx context.Context, id uint) error
}

func NewFormEventSubscriber(counter submissionCounter) *FormEventSubscriber {
	return &FormEventSubscriber{counter: counter}
}

func (s *FormEventSubscriber) Register(bus *eventbus.FormEventBus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.FormEventCreated, s.handleLifecycle)
	bus.Subscribe(eventbus.FormEventUpdated, s.handleLifecycle)
	bus.Subscribe(eventbus.FormEventDeleted, s.handleLifecycle)
	bus.Subscribe(eventbus.FormEventSubmitted, s.handleSubmitted)
}

func (s *FormEventSubscriber) handleLifecycle(ctx context.Context, event eventbus.FormEvent) error {
	klog.V(6).Infof("文档事件处理成功: type=%s, formID=%d, kind=%s", event.Type, event.FormID, event.Kind)
	return nil
}

// handleSubmitted 每个提交事件计数加一
func (s *FormEventSubscriber) handleSubmitted(ctx context.Context, event eventbus.FormEvent) error {
	if event.FormID == 0 {
		return fmt.Errorf("表单ID为空")
	}
	if err := s.counter.IncrementSubmissions(ctx, event.FormID); err != nil {
		klog.Errorf("提交事件处理失败: formID=%d, submissionID=%s, error=%v", event.FormID, event.SubmissionID, err)
		return err
	}
	klog.V(6).Infof("提交事件处理成功: formID=%d, submissionID=%s", event.FormID, event.SubmissionID)
	return nil
}
