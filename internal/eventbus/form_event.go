package eventbus

import "github.com/apper-apps/agencyflowapi/internal/model"

type FormEventType string

const (
	FormEventCreated   FormEventType = "FormCreated"
	FormEventUpdated   FormEventType = "FormUpdated"
	FormEventDeleted   FormEventType = "FormDeleted"
	FormEventSubmitted FormEventType = "FormSubmitted"
)

type FormEvent struct {
	Type         FormEventType
	FormID       uint
	Kind         model.Kind
	SubmissionID string // 仅提交事件
}

type FormEventHandler = Handler[FormEvent]
type FormEventBus = Bus[FormEventType, FormEvent]

func NewFormEventBus() *FormEventBus {
	return NewBus[FormEventType, FormEvent]()
}
