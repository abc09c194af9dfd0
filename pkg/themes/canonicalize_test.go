package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize_Basic(t *testing.T) {
	c := Canonicalize("God's Amazing Grace!")

	assert.Equal(t, "gods amazing grace", c.Key)
	assert.Contains(t, c.Tokens, "amazing")
	assert.Contains(t, c.Tokens, "grace")
	assert.NotContains(t, c.Tokens, "gods")
}

func TestCanonicalize_TypographicQuotesAndDashes(t *testing.T) {
	c := Canonicalize("God’s Covenant — Promise")

	assert.Equal(t, "gods covenant promise", c.Key)
	assert.Contains(t, c.Tokens, "covenant")
	assert.Contains(t, c.Tokens, "promise")
}

func TestCanonicalize_WhitespaceCollapse(t *testing.T) {
	c := Canonicalize("  the   Hope\tof  Glory  ")

	assert.Equal(t, "the hope of glory", c.Key)
	assert.Equal(t, map[string]struct{}{"hope": {}, "glory": {}}, c.Tokens)
}

func TestCanonicalize_EmptyAndPunctuationOnly(t *testing.T) {
	for _, raw := range []string{"", "   ", "!!!", "...---..."} {
		c := Canonicalize(raw)
		assert.Empty(t, c.Key, "raw=%q", raw)
		assert.Empty(t, c.Tokens, "raw=%q", raw)
	}
}

func TestCanonicalize_StopwordsOnly(t *testing.T) {
	c := Canonicalize("The Lord God")

	assert.Equal(t, "the lord god", c.Key)
	assert.Empty(t, c.Tokens)
}

func TestCanonicalize_Idempotent(t *testing.T) {
	inputs := []string{
		"God's Forgiveness",
		"Amazing   Grace!!",
		"Walking by “Faith”",
		"self-examination",
		"",
	}
	for _, raw := range inputs {
		first := Canonicalize(raw)
		second := Canonicalize(first.Key)
		assert.Equal(t, first.Key, second.Key, "raw=%q", raw)
		assert.Equal(t, first.Tokens, second.Tokens, "raw=%q", raw)
	}
}
