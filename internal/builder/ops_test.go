package builder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apper-apps/agencyflowapi/internal/domain"
	"github.com/apper-apps/agencyflowapi/internal/formkit"
	"github.com/apper-apps/agencyflowapi/internal/model"
)

func formWith(t *testing.T, types ...model.FieldType) *model.Form {
	t.Helper()
	reg := formkit.NewRegistry(formkit.NewSequenceIDs("f"))
	doc := NewForm()
	for _, ft := range types {
		f, err := reg.CreateDefault(ft)
		require.NoError(t, err)
		doc = AddField(doc, f)
	}
	return doc
}

func TestReorderKeepsIdentity(t *testing.T) {
	doc := formWith(t, model.FieldTypeText, model.FieldTypeSelect, model.FieldTypeNumber, model.FieldTypeTextarea)
	before := map[string]model.Field{}
	for _, f := range doc.Fields {
		before[f.ID] = f
	}

	out, err := Reorder(doc, 0, 3)
	require.NoError(t, err)

	ids := make([]string, 0, len(out.Fields))
	for _, f := range out.Fields {
		ids = append(ids, f.ID)
		assert.Equal(t, before[f.ID], f, "field %s changed", f.ID)
	}
	assert.Equal(t, []string{"f2", "f3", "f4", "f1"}, ids)
	assert.Equal(t, "f1", doc.Fields[0].ID, "input untouched")

	out, err = Reorder(out, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, doc.Fields, out.Fields)
}

func TestReorderOutOfRange(t *testing.T) {
	doc := formWith(t, model.FieldTypeText)
	_, err := Reorder(doc, 0, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestUpdateAndRemoveByID(t *testing.T) {
	doc := formWith(t, model.FieldTypeText, model.FieldTypeEmail)
	label := "Work email"
	out, err := UpdateField(doc, "f2", model.FieldPatch{Label: &label})
	require.NoError(t, err)
	assert.Equal(t, "Work email", out.Fields[1].Label)
	assert.Equal(t, "Email Field", doc.Fields[1].Label)

	out, err = RemoveField(out, "f1")
	require.NoError(t, err)
	require.Len(t, out.Fields, 1)
	assert.Equal(t, "f2", out.Fields[0].ID)

	_, err = RemoveField(out, "f1")
	assert.True(t, errors.Is(err, ErrFieldNotFound))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestOptionsPatchOnTextFieldIsDropped(t *testing.T) {
	doc := formWith(t, model.FieldTypeText)
	opts := []string{"a", "b"}
	out, err := UpdateField(doc, "f1", model.FieldPatch{Options: &opts})
	require.NoError(t, err)
	_, ok := out.Fields[0].Options()
	assert.False(t, ok)
}

func TestSectionOperationsRenumber(t *testing.T) {
	doc := NewTemplate()
	reg := formkit.NewRegistry(formkit.NewSequenceIDs("s"))
	s, err := reg.CreateDefaultSection(model.SectionTypeTimeline, 0)
	require.NoError(t, err)
	doc = AddSection(doc, s)
	require.Len(t, doc.Sections, 4)
	assert.Equal(t, 4, doc.Sections[3].Order)

	out, err := ReorderSections(doc, 3, 0)
	require.NoError(t, err)
	ids := []string{}
	for i, sec := range out.Sections {
		assert.Equal(t, i+1, sec.Order)
		ids = append(ids, sec.ID)
	}
	assert.Equal(t, []string{"s1", "cover", "overview", "investment"}, ids)

	out, err = RemoveSection(out, "cover")
	require.NoError(t, err)
	for i, sec := range out.Sections {
		assert.Equal(t, i+1, sec.Order)
	}

	_, err = UpdateSection(out, "cover", model.SectionPatch{})
	assert.True(t, errors.Is(err, ErrSectionNotFound))
}

func TestSettingsBrandingPlaceholders(t *testing.T) {
	doc := NewTemplate()
	theme := model.ThemeElegant
	color := "#111111"
	out := UpdateSettings(doc, model.SettingsPatch{Theme: &theme})
	out = UpdateBranding(out, model.BrandingPatch{PrimaryColor: &color})
	out = SetPlaceholder(out, "clientName", "[CLIENT]")

	assert.Equal(t, model.ThemeElegant, out.Settings.Theme)
	assert.Equal(t, "#111111", out.Branding.PrimaryColor)
	assert.Equal(t, "[CLIENT]", out.Placeholders["clientName"])
	assert.Equal(t, "[CLIENT_NAME]", doc.Placeholders["clientName"])
	assert.Equal(t, model.ThemeProfessional, doc.Settings.Theme)
}
