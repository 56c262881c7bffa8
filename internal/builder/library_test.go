package builder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apper-apps/agencyflowapi/internal/model"
)

func TestLibraryCategories(t *testing.T) {
	cats := LibraryCategories()
	require.Len(t, cats, 7)
	assert.Equal(t, CategoryAll, cats[0].ID)
	assert.Equal(t, model.CategorySEO, cats[6].ID)
}

func TestLibraryFilter(t *testing.T) {
	assert.Len(t, Library(CategoryAll), 3)
	assert.Len(t, Library(""), 3)

	marketing := Library(model.CategoryMarketing)
	require.Len(t, marketing, 1)
	assert.Equal(t, "marketing-campaign", marketing[0].Key)
	assert.Len(t, marketing[0].Sections, 7)

	assert.Empty(t, Library(model.CategorySEO))
}

func TestFromPrebuilt(t *testing.T) {
	doc, err := FromPrebuilt("web-design-basic")
	require.NoError(t, err)

	assert.Zero(t, doc.ID)
	assert.Equal(t, model.KindTemplate, doc.Kind)
	assert.Equal(t, "Basic Website Design - Copy", doc.Name)
	assert.Equal(t, model.CategoryWebDesign, doc.Category)
	require.Len(t, doc.Sections, 6)
	assert.False(t, doc.Sections[5].Required)
	assert.Equal(t, model.DefaultPlaceholders(), doc.Placeholders)
	assert.Equal(t, model.DefaultSettings(model.KindTemplate), doc.Settings)
	assert.True(t, doc.Branding.Letterhead)
	assert.NoError(t, ValidateForSave(doc))
}

func TestFromPrebuiltDoesNotShareSections(t *testing.T) {
	doc, err := FromPrebuilt("business-consulting")
	require.NoError(t, err)
	doc.Sections[0].Name = "Changed"

	again, _ := LookupPrebuilt("business-consulting")
	assert.Equal(t, "Cover Page", again.Sections[0].Name)
}

func TestFromPrebuiltUnknown(t *testing.T) {
	_, err := FromPrebuilt("nope")
	assert.True(t, errors.Is(err, ErrPrebuiltNotFound))
}
