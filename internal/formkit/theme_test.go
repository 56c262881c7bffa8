package formkit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apper-apps/agencyflowapi/internal/model"
)

func TestResolveThemeFallsBackToDefault(t *testing.T) {
	assert.Equal(t, ResolveTheme(model.ThemeDefault), ResolveTheme("nonexistent-theme"))
	assert.Equal(t, ResolveTheme(model.ThemeDefault), ResolveTheme(""))
}

func TestThemesAreDistinct(t *testing.T) {
	seen := map[ThemeRules]model.Theme{}
	for _, name := range model.Themes {
		rules := ResolveTheme(name)
		if prev, dup := seen[rules]; dup {
			t.Fatalf("theme %s resolves to the same rules as %s", name, prev)
		}
		seen[rules] = name
	}
	assert.Len(t, seen, 5)
}
