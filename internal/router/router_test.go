package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/apper-apps/agencyflowapi/config"
	"github.com/apper-apps/agencyflowapi/internal/builder"
	"github.com/apper-apps/agencyflowapi/internal/embed"
	"github.com/apper-apps/agencyflowapi/internal/embedcode"
	"github.com/apper-apps/agencyflowapi/internal/eventbus"
	"github.com/apper-apps/agencyflowapi/internal/formkit"
	"github.com/apper-apps/agencyflowapi/internal/handler"
	"github.com/apper-apps/agencyflowapi/internal/model"
	"github.com/apper-apps/agencyflowapi/internal/repository"
	"github.com/apper-apps/agencyflowapi/internal/service"
)

func setupEngine(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Form{}, &model.Submission{}))

	forms := service.NewFormService(repository.NewFormRepository(db), repository.NewSubmissionRepository(db), eventbus.NewFormEventBus())
	registry := formkit.NewRegistry(formkit.NewSequenceIDs("f"))
	embed := embedcode.NewGenerator(cfg.Server.PublicOrigin)

	return Setup(cfg,
		handler.NewFormHandler(forms, embed),
		handler.NewCatalogHandler(registry),
		handler.NewBuilderHandler(builder.NewWorkspace(registry, nil), forms, embed),
	)
}

func TestSetup_Routes(t *testing.T) {
	r := setupEngine(t, config.Default())

	for _, path := range []string{"/healthz", "/api/forms", "/api/field-types", "/api/templates/library"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/builder/drafts", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestSetup_CORSAndGzip(t *testing.T) {
	cfg := config.Default()
	cfg.Server.CORSOrigins = []string{"https://agency.example.com"}
	r := setupEngine(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/section-types", nil)
	req.Header.Set("Origin", "https://agency.example.com")
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://agency.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}

func TestSetup_StylesheetMatchesPages(t *testing.T) {
	r := setupEngine(t, config.Default())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, formkit.StylesheetPath, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, embed.StylesheetPath, formkit.StylesheetPath)
}
