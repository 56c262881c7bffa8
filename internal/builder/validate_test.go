package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apper-apps/agencyflowapi/internal/domain"
	"github.com/apper-apps/agencyflowapi/internal/formkit"
	"github.com/apper-apps/agencyflowapi/internal/model"
)

type countingSaver struct {
	calls int
	err   error
}

func (c *countingSaver) Save(ctx context.Context, doc *model.Form) (*model.Form, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	out := doc.Clone()
	out.ID = uint(c.calls)
	return out, nil
}

func TestValidateForSaveRejectsEmptyDocument(t *testing.T) {
	err := ValidateForSave(NewForm())
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, EmptyDocumentMessage, err.Error())
}

func TestValidateForSaveChecksShape(t *testing.T) {
	doc := formWith(t, model.FieldTypeText)
	require.NoError(t, ValidateForSave(doc))

	doc.Name = ""
	doc.Settings.Theme = "neon"
	doc.Branding.PrimaryColor = "blue"
	err := ValidateForSave(doc)
	require.Error(t, err)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Details, "name failed required")
	assert.Contains(t, ve.Details, "settings.theme failed oneof")
	assert.Contains(t, ve.Details, "branding.primaryColor failed hexcolor")
}

func TestValidateForSaveTemplateSections(t *testing.T) {
	doc := NewTemplate()
	require.NoError(t, ValidateForSave(doc))

	doc.Sections[0].Type = "hero"
	var ve *domain.ValidationError
	require.ErrorAs(t, ValidateForSave(doc), &ve)
	assert.Contains(t, ve.Details, "sections[0].type failed oneof")
}

func TestDraftSaveGuardSkipsSaver(t *testing.T) {
	reg := formkit.NewRegistry(formkit.NewSequenceIDs("f"))
	draft := NewDraft(NewForm(), reg, nil)
	saver := &countingSaver{}

	_, err := draft.Save(context.Background(), saver)
	require.Error(t, err)
	assert.Equal(t, 0, saver.calls)
	assert.Empty(t, draft.Log())
	assert.Zero(t, draft.Doc().ID)
}
