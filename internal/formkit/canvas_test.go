package formkit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/atom"

	"github.com/apper-apps/agencyflowapi/internal/model"
)

var testActions = Actions{Base: "/builder/drafts/tok"}

func sampleForm(t *testing.T) *model.Form {
	t.Helper()
	reg := NewRegistry(NewSequenceIDs("f"))
	doc := &model.Form{Kind: model.KindForm, Name: "Contact Us", Settings: model.DefaultSettings(model.KindForm)}
	for _, ft := range []model.FieldType{model.FieldTypeText, model.FieldTypeTextarea, model.FieldTypeRadio} {
		f, err := reg.CreateDefault(ft)
		require.NoError(t, err)
		doc.Fields = append(doc.Fields, f)
	}
	return doc
}

func TestMoveBounds(t *testing.T) {
	cases := []struct {
		index, n int
		up, down bool
	}{
		{0, 1, false, false},
		{0, 3, false, true},
		{1, 3, true, true},
		{2, 3, true, false},
		{-1, 3, false, false},
		{3, 3, false, false},
	}
	for _, tc := range cases {
		up, down := MoveBounds(tc.index, tc.n)
		assert.Equal(t, tc.up, up, "index %d of %d", tc.index, tc.n)
		assert.Equal(t, tc.down, down, "index %d of %d", tc.index, tc.n)
	}
}

func TestCanvasItemsSelection(t *testing.T) {
	doc := sampleForm(t)

	items := CanvasItems(doc, "f2")
	require.Len(t, items, 3)
	assert.False(t, items[0].Selected)
	assert.True(t, items[1].Selected)
	assert.False(t, items[0].CanMoveUp)
	assert.True(t, items[2].CanMoveUp)
	assert.False(t, items[2].CanMoveDown)

	for _, item := range CanvasItems(doc, "") {
		assert.False(t, item.Selected)
	}
}

func TestCanvasEmptyState(t *testing.T) {
	doc := &model.Form{Name: "Empty"}
	out := RenderString(Canvas(doc, "", testActions))

	assert.Contains(t, out, "Start Building Your Form")
	assert.NotContains(t, out, "submit-preview")
}

func TestCanvasRendersDisabledWidgets(t *testing.T) {
	doc := sampleForm(t)
	root := Canvas(doc, "f1", testActions)

	inputs := FindAll(root, func(n Node) bool {
		return ByAtom(atom.Input)(n) && !ByAttr("type", "hidden")(n)
	})
	require.NotEmpty(t, inputs)
	for _, in := range inputs {
		assert.True(t, HasAttr(in, "disabled"), "canvas input must be disabled")
	}

	ta := Find(root, ByAtom(atom.Textarea))
	require.NotNil(t, ta)
	rows, _ := Attr(ta, "rows")
	assert.Equal(t, "3", rows)

	radios := FindAll(root, ByAttr("type", "radio"))
	require.Len(t, radios, 3)
	for _, r := range radios {
		name, _ := Attr(r, "name")
		assert.Equal(t, "f3", name)
	}

	btn := Find(root, ByAttr("data-role", "submit-preview"))
	require.NotNil(t, btn)
	assert.Equal(t, "Submit", TextContent(btn))
}

func TestCanvasMoveButtonsDisabledAtBounds(t *testing.T) {
	doc := sampleForm(t)
	root := Canvas(doc, "", testActions)

	first := Find(root, ByAttr("data-field-id", "f1"))
	last := Find(root, ByAttr("data-field-id", "f3"))
	require.NotNil(t, first)
	require.NotNil(t, last)

	up := Find(first, ByAttr("title", "Move up"))
	down := Find(last, ByAttr("title", "Move down"))
	assert.True(t, HasAttr(up, "disabled"))
	assert.True(t, HasAttr(down, "disabled"))
	assert.False(t, HasAttr(Find(first, ByAttr("title", "Move down")), "disabled"))
}

func TestCanvasSelectDropdownHasLeadingEmptyOption(t *testing.T) {
	doc := &model.Form{Name: "S", Fields: []model.Field{
		{ID: "s", Type: model.FieldTypeSelect, Label: "Pick", Props: &model.ChoiceProps{Options: []string{"A", "B"}}},
	}}
	sel := Find(Canvas(doc, "", testActions), ByAtom(atom.Select))
	require.NotNil(t, sel)

	opts := FindAll(sel, ByAtom(atom.Option))
	require.Len(t, opts, 3)
	v, _ := Attr(opts[0], "value")
	assert.Equal(t, "", v)
	assert.Equal(t, "A", TextContent(opts[1]))
}

func TestUnknownFieldTypeIsVisible(t *testing.T) {
	doc := &model.Form{Name: "Odd", Fields: []model.Field{{ID: "x", Type: "bogus", Label: "Mystery"}}}

	canvas := RenderString(Canvas(doc, "", testActions))
	assert.Contains(t, canvas, "Unknown field type: bogus")

	preview := RenderString(NewPreview(nil).Render(doc, testActions))
	assert.Contains(t, preview, "Unknown field type: bogus")
}

func TestSectionCanvas(t *testing.T) {
	doc := &model.Form{Kind: model.KindTemplate, Name: "Proposal", Sections: []model.Section{
		{ID: "a", Name: "Cover Page", Type: model.SectionTypeCover, Required: true, Content: "Welcome", Order: 1},
		{ID: "b", Name: "Pricing", Type: model.SectionTypePricing, Order: 2},
	}}
	root := SectionCanvas(doc, "b", testActions)
	out := RenderString(root)

	assert.Contains(t, out, "Welcome")
	assert.Contains(t, out, "This is a pricing section. Click to edit content.")
	assert.Equal(t, 1, strings.Count(out, ">Required<"))

	selected := Find(root, ByAttr("data-section-id", "b"))
	class, _ := Attr(selected, "class")
	assert.Contains(t, class, "border-indigo-500")

	empty := RenderString(SectionCanvas(&model.Form{Name: "Blank", Kind: model.KindTemplate}, "", testActions))
	assert.Contains(t, empty, "No sections added yet. Add sections from the left panel.")
}

func TestPaletteListsAllTypes(t *testing.T) {
	reg := NewRegistry(NewSequenceIDs("f"))
	root := Palette(reg, testActions)

	buttons := FindAll(root, func(n Node) bool { return HasAttr(n, "data-type") })
	assert.Len(t, buttons, len(reg.ListTypes("")))
	assert.Contains(t, RenderString(root), "Pro Tip")
}

func TestEveryRegisteredTypeHasWidget(t *testing.T) {
	for _, k := range model.FieldKinds() {
		_, ok := variants[k.Type]
		assert.True(t, ok, "type %s has no widget", k.Type)
	}
}
