package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/apper-apps/agencyflowapi/internal/domain"
	"github.com/apper-apps/agencyflowapi/internal/eventbus"
	"github.com/apper-apps/agencyflowapi/internal/model"
	"github.com/apper-apps/agencyflowapi/internal/repository"
	"github.com/apper-apps/agencyflowapi/internal/subscriber"
)

type mockFormRepo struct {
	ListFunc                 func(ctx context.Context, filter model.FormFilter) ([]model.Form, error)
	GetFunc                  func(ctx context.Context, id uint) (*model.Form, error)
	CreateFunc               func(ctx context.Context, doc *model.Form) error
	UpdateFunc               func(ctx context.Context, id uint, doc *model.Form) (*model.Form, error)
	DeleteFunc               func(ctx context.Context, id uint) error
	IncrementSubmissionsFunc func(ctx context.Context, id uint) error
}

func (m *mockFormRepo) List(ctx context.Context, filter model.FormFilter) ([]model.Form, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockFormRepo) Get(ctx context.Context, id uint) (*model.Form, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockFormRepo) Create(ctx context.Context, doc *model.Form) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, doc)
	}
	return nil
}

func (m *mockFormRepo) Update(ctx context.Context, id uint, doc *model.Form) (*model.Form, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, doc)
	}
	return doc, nil
}

func (m *mockFormRepo) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockFormRepo) IncrementSubmissions(ctx context.Context, id uint) error {
	if m.IncrementSubmissionsFunc != nil {
		return m.IncrementSubmissionsFunc(ctx, id)
	}
	return nil
}

type mockSubmissionRepo struct {
	CreateFunc       func(ctx context.Context, sub *model.Submission) error
	ListByFormFunc   func(ctx context.Context, formID uint, limit int) ([]model.Submission, error)
	CountByFormFunc  func(ctx context.Context, formID uint) (int64, error)
	LatestByFormFunc func(ctx context.Context, formID uint) (*time.Time, error)
	DeleteByFormFunc func(ctx context.Context, formID uint) error
}

func (m *mockSubmissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubmissionRepo) ListByForm(ctx context.Context, formID uint, limit int) ([]model.Submission, error) {
	if m.ListByFormFunc != nil {
		return m.ListByFormFunc(ctx, formID, limit)
	}
	return nil, nil
}

func (m *mockSubmissionRepo) CountByForm(ctx context.Context, formID uint) (int64, error) {
	if m.CountByFormFunc != nil {
		return m.CountByFormFunc(ctx, formID)
	}
	return 0, nil
}

func (m *mockSubmissionRepo) LatestByForm(ctx context.Context, formID uint) (*time.Time, error) {
	if m.LatestByFormFunc != nil {
		return m.LatestByFormFunc(ctx, formID)
	}
	return nil, nil
}

func (m *mockSubmissionRepo) DeleteByForm(ctx context.Context, formID uint) error {
	if m.DeleteByFormFunc != nil {
		return m.DeleteByFormFunc(ctx, formID)
	}
	return nil
}

func contactUs() *model.Form {
	return &model.Form{
		Kind: model.KindForm,
		Name: "Contact Us",
		Fields: datatypes.JSONSlice[model.Field]{
			{ID: "f1", Type: model.FieldTypeText, Label: "Name", Required: true},
		},
		Settings: model.DefaultSettings(model.KindForm),
	}
}

func TestSaveGuardDoesNotCallRepository(t *testing.T) {
	called := false
	repo := &mockFormRepo{
		CreateFunc: func(ctx context.Context, doc *model.Form) error {
			called = true
			return nil
		},
		UpdateFunc: func(ctx context.Context, id uint, doc *model.Form) (*model.Form, error) {
			called = true
			return doc, nil
		},
	}
	svc := NewFormService(repo, &mockSubmissionRepo{}, nil)

	_, err := svc.Save(context.Background(), &model.Form{Name: "Empty"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	_, err = svc.Save(context.Background(), &model.Form{ID: 3, Name: "Empty"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.False(t, called)
}

func TestSaveCreatesThenUpdates(t *testing.T) {
	var events []eventbus.FormEventType
	bus := eventbus.NewFormEventBus()
	record := func(ctx context.Context, e eventbus.FormEvent) error {
		events = append(events, e.Type)
		return nil
	}
	bus.Subscribe(eventbus.FormEventCreated, record)
	bus.Subscribe(eventbus.FormEventUpdated, record)

	repo := &mockFormRepo{
		CreateFunc: func(ctx context.Context, doc *model.Form) error {
			doc.ID = 1
			return nil
		},
	}
	svc := NewFormService(repo, &mockSubmissionRepo{}, bus)

	input := contactUs()
	saved, err := svc.Save(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, uint(1), saved.ID)
	assert.Zero(t, input.ID, "caller's document untouched")

	_, err = svc.Save(context.Background(), saved)
	require.NoError(t, err)
	assert.Equal(t, []eventbus.FormEventType{eventbus.FormEventCreated, eventbus.FormEventUpdated}, events)
}

func TestGetMapsNotFound(t *testing.T) {
	repo := &mockFormRepo{
		GetFunc: func(ctx context.Context, id uint) (*model.Form, error) {
			return nil, &domain.NotFoundError{Resource: "Form", ID: id, Err: repository.ErrNotFound}
		},
	}
	svc := NewFormService(repo, &mockSubmissionRepo{}, nil)

	_, err := svc.Get(context.Background(), 9)
	assert.True(t, errors.Is(err, ErrFormNotFound))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = svc.Submit(context.Background(), 9, SubmitRequest{})
	assert.True(t, errors.Is(err, ErrFormNotFound))
}

func TestDeleteRemovesSubmissions(t *testing.T) {
	deleted := uint(0)
	subs := &mockSubmissionRepo{
		DeleteByFormFunc: func(ctx context.Context, formID uint) error {
			deleted = formID
			return nil
		},
	}
	svc := NewFormService(&mockFormRepo{}, subs, nil)
	require.NoError(t, svc.Delete(context.Background(), 4))
	assert.Equal(t, uint(4), deleted)
}

func TestDeleteNotFoundSkipsSubmissions(t *testing.T) {
	repo := &mockFormRepo{
		DeleteFunc: func(ctx context.Context, id uint) error {
			return &domain.NotFoundError{Resource: "Form", ID: id, Err: repository.ErrNotFound}
		},
	}
	subs := &mockSubmissionRepo{
		DeleteByFormFunc: func(ctx context.Context, formID uint) error {
			t.Fatalf("submissions must not be touched")
			return nil
		},
	}
	err := NewFormService(repo, subs, nil).Delete(context.Background(), 4)
	assert.True(t, errors.Is(err, ErrFormNotFound))
}

func TestStats(t *testing.T) {
	last := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := &mockFormRepo{
		GetFunc: func(ctx context.Context, id uint) (*model.Form, error) {
			doc := contactUs()
			doc.ID = id
			doc.Submissions = 7
			return doc, nil
		},
	}
	subs := &mockSubmissionRepo{
		LatestByFormFunc: func(ctx context.Context, formID uint) (*time.Time, error) {
			return &last, nil
		},
	}
	stats, err := NewFormService(repo, subs, nil).Stats(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, &FormStats{TotalSubmissions: 7, LastSubmission: &last, FieldCount: 1, SectionCount: 0}, stats)
}

func TestSubmitIncrementsCounterOncePerCall(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Form{}, &model.Submission{}))

	formRepo := repository.NewFormRepository(db)
	bus := eventbus.NewFormEventBus()
	subscriber.NewFormEventSubscriber(formRepo).Register(bus)
	svc := NewFormService(formRepo, repository.NewSubmissionRepository(db), bus)
	ctx := context.Background()

	saved, err := svc.Save(ctx, contactUs())
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		sub, err := svc.Submit(ctx, saved.ID, SubmitRequest{Data: map[string]interface{}{"f1": "Ada"}, IPAddress: "127.0.0.1", UserAgent: "test"})
		require.NoError(t, err)
		assert.Len(t, sub.ID, 36)

		got, err := svc.Get(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, i, got.Submissions)
	}

	stats, err := svc.Stats(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalSubmissions)
	require.NotNil(t, stats.LastSubmission)

	list, err := svc.Submissions(ctx, saved.ID, 0)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, "127.0.0.1", list[0].IPAddress)
}

func TestListPassesFilterAndRejectsUnknownStatus(t *testing.T) {
	var got model.FormFilter
	repo := &mockFormRepo{
		ListFunc: func(ctx context.Context, filter model.FormFilter) ([]model.Form, error) {
			got = filter
			return []model.Form{*contactUs()}, nil
		},
	}
	svc := NewFormService(repo, &mockSubmissionRepo{}, nil)

	want := model.FormFilter{Kind: model.KindForm, Query: "contact", Status: model.StatusInactive}
	forms, err := svc.List(context.Background(), want)
	require.NoError(t, err)
	assert.Len(t, forms, 1)
	assert.Equal(t, want, got)

	got = model.FormFilter{}
	_, err = svc.List(context.Background(), model.FormFilter{Status: "archived"})
	assert.True(t, errors.Is(err, ErrInvalidStatus))
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, model.FormFilter{}, got, "repository not queried")
}

func TestDuplicate(t *testing.T) {
	var events []eventbus.FormEvent
	bus := eventbus.NewFormEventBus()
	bus.Subscribe(eventbus.FormEventCreated, func(ctx context.Context, e eventbus.FormEvent) error {
		events = append(events, e)
		return nil
	})

	src := contactUs()
	src.ID = 4
	src.Submissions = 12
	src.CreatedAt = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	var stored *model.Form
	repo := &mockFormRepo{
		GetFunc: func(ctx context.Context, id uint) (*model.Form, error) {
			return src.Clone(), nil
		},
		CreateFunc: func(ctx context.Context, doc *model.Form) error {
			stored = doc
			doc.ID = 5
			return nil
		},
	}
	dup, err := NewFormService(repo, &mockSubmissionRepo{}, bus).Duplicate(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, uint(5), dup.ID)
	assert.Equal(t, "Contact Us - Copy", dup.Name)
	assert.Zero(t, stored.Submissions)
	assert.True(t, stored.CreatedAt.IsZero())
	assert.Equal(t, src.Fields, dup.Fields)
	assert.Equal(t, "Contact Us", src.Name, "source untouched")
	require.Len(t, events, 1)
	assert.Equal(t, uint(5), events[0].FormID)
}

func TestDuplicateMissing(t *testing.T) {
	repo := &mockFormRepo{
		GetFunc: func(ctx context.Context, id uint) (*model.Form, error) {
			return nil, &domain.NotFoundError{Resource: "Form", ID: id, Err: repository.ErrNotFound}
		},
		CreateFunc: func(ctx context.Context, doc *model.Form) error {
			t.Fatalf("nothing to copy")
			return nil
		},
	}
	_, err := NewFormService(repo, &mockSubmissionRepo{}, nil).Duplicate(context.Background(), 9)
	assert.True(t, errors.Is(err, ErrFormNotFound))
}
