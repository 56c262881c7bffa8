package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/apper-apps/agencyflowapi/internal/builder"
	"github.com/apper-apps/agencyflowapi/internal/embedcode"
	"github.com/apper-apps/agencyflowapi/internal/eventbus"
	"github.com/apper-apps/agencyflowapi/internal/formkit"
	"github.com/apper-apps/agencyflowapi/internal/model"
	"github.com/apper-apps/agencyflowapi/internal/repository"
	"github.com/apper-apps/agencyflowapi/internal/service"
	"github.com/apper-apps/agencyflowapi/internal/subscriber"
)

const testOrigin = "https://app.example.com"

type testServer struct {
	engine    *gin.Engine
	forms     *service.FormService
	workspace *builder.Workspace
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Form{}, &model.Submission{}))

	formRepo := repository.NewFormRepository(db)
	bus := eventbus.NewFormEventBus()
	subscriber.NewFormEventSubscriber(formRepo).Register(bus)
	forms := service.NewFormService(formRepo, repository.NewSubmissionRepository(db), bus)

	registry := formkit.NewRegistry(formkit.NewSequenceIDs("f"))
	submitter := formkit.SubmitterFunc(func(ctx context.Context, doc *model.Form, answers map[string]formkit.Answer) error {
		return nil
	})
	workspace := builder.NewWorkspace(registry, submitter)
	embed := embedcode.NewGenerator(testOrigin)

	r := gin.New()
	api := r.Group("/api")
	NewFormHandler(forms, embed).RegisterRoutes(api)
	NewCatalogHandler(registry).RegisterRoutes(api)
	NewBuilderHandler(workspace, forms, embed).RegisterRoutes(r)

	return &testServer{engine: r, forms: forms, workspace: workspace}
}

func (s *testServer) do(method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) post(target string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func contactFormJSON() []byte {
	return []byte(`{
		"name": "Contact Us",
		"fields": [
			{"id": "name", "type": "text", "label": "Name", "required": true},
			{"id": "budget", "type": "select", "label": "Budget", "options": ["Small", "Large"]}
		]
	}`)
}
