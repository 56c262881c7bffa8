package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apper-apps/agencyflowapi/internal/builder"
	"github.com/apper-apps/agencyflowapi/internal/embedcode"
	"github.com/apper-apps/agencyflowapi/internal/formkit"
	"github.com/apper-apps/agencyflowapi/internal/model"
)

func TestCatalogHandler_FieldTypes(t *testing.T) {
	s := newTestServer(t)

	all := decode[[]model.FieldKind](t, s.do(http.MethodGet, "/api/field-types", nil))
	choice := decode[[]model.FieldKind](t, s.do(http.MethodGet, "/api/field-types?group=Choice", nil))
	assert.Len(t, all, len(model.FieldKinds()))
	require.NotEmpty(t, choice)
	assert.Less(t, len(choice), len(all))
	for _, k := range choice {
		assert.Equal(t, model.FieldGroupChoice, k.Group)
	}
}

func TestCatalogHandler_Library(t *testing.T) {
	s := newTestServer(t)

	type library struct {
		Categories []builder.LibraryCategory `json:"categories"`
		Templates  []builder.Prebuilt        `json:"templates"`
	}
	all := decode[library](t, s.do(http.MethodGet, "/api/templates/library?category=all", nil))
	assert.Len(t, all.Categories, 7)
	assert.Len(t, all.Templates, 3)

	marketing := decode[library](t, s.do(http.MethodGet, "/api/templates/library?category=marketing", nil))
	require.Len(t, marketing.Templates, 1)
	assert.Equal(t, "marketing-campaign", marketing.Templates[0].Key)
}

func TestCatalogHandler_ThemesAndKinds(t *testing.T) {
	s := newTestServer(t)

	elegant := decode[formkit.ThemeRules](t, s.do(http.MethodGet, "/api/themes/elegant", nil))
	assert.Equal(t, formkit.ResolveTheme(model.ThemeElegant), elegant)
	unknown := decode[formkit.ThemeRules](t, s.do(http.MethodGet, "/api/themes/neon", nil))
	assert.Equal(t, formkit.ResolveTheme(model.ThemeDefault), unknown)

	kinds := decode[[]embedcode.KindInfo](t, s.do(http.MethodGet, "/api/embed-kinds", nil))
	assert.Len(t, kinds, 4)
	assert.Len(t, decode[[]model.SectionKind](t, s.do(http.MethodGet, "/api/section-types", nil)), len(model.SectionKinds()))
}
