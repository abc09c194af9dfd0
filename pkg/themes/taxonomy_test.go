package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomy_IDsUniqueAndResolvable(t *testing.T) {
	seen := make(map[string]bool)
	for _, theme := range All() {
		assert.False(t, seen[theme.ID], "duplicate theme id %s", theme.ID)
		seen[theme.ID] = true

		assert.Same(t, theme, ByID(theme.ID))
		assert.True(t, IsValidID(theme.ID))
	}
	assert.Nil(t, ByID("no-such-theme"))
	assert.False(t, IsValidID("no-such-theme"))
}

// Keywords must already be in canonical token form, otherwise they can
// never intersect with a canonicalized input.
func TestTaxonomy_KeywordsAreCanonicalTokens(t *testing.T) {
	for _, theme := range All() {
		for _, kw := range theme.Keywords {
			c := Canonicalize(kw)
			assert.Equal(t, kw, c.Key, "theme %s keyword %q is not canonical", theme.ID, kw)
			_, survives := c.Tokens[kw]
			assert.True(t, survives, "theme %s keyword %q is a stopword", theme.ID, kw)
		}
	}
}

func TestDictionary_EveryDisplayNameResolvesToItsTheme(t *testing.T) {
	m := NewMatcher()
	for _, theme := range All() {
		result := m.Match(theme.DisplayName)
		require.Equal(t, MatchExact, result.Kind, "display name %q", theme.DisplayName)
		assert.Same(t, theme, result.Theme)
		assert.Equal(t, 1.0, result.Confidence)
	}
}

func TestDictionary_SynonymTableReferencesOnlyKnownThemes(t *testing.T) {
	for phrase, id := range synonyms {
		assert.True(t, IsValidID(id), "synonym %q -> %s", phrase, id)
	}
}
