package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONArray_Plain(t *testing.T) {
	got, err := ExtractJSONArray(`["Grace", "Mercy"]`)
	require.NoError(t, err)
	assert.Equal(t, `["Grace", "Mercy"]`, got)
}

func TestExtractJSONArray_MarkdownFence(t *testing.T) {
	response := "Here are the themes:\n```json\n[\"God's forgiveness\", \"Faith\"]\n```\n"
	got, err := ExtractJSONArray(response)
	require.NoError(t, err)
	assert.Equal(t, `["God's forgiveness", "Faith"]`, got)
}

func TestExtractJSONArray_ThinkingTags(t *testing.T) {
	response := "<think>let me consider the transcript...</think>\n[\"Hope\"]"
	got, err := ExtractJSONArray(response)
	require.NoError(t, err)
	assert.Equal(t, `["Hope"]`, got)
}

func TestExtractJSONArray_BracketsInsideStrings(t *testing.T) {
	got, err := ExtractJSONArray(`["new covenant [Jeremiah 31]", "grace"]`)
	require.NoError(t, err)
	assert.Equal(t, `["new covenant [Jeremiah 31]", "grace"]`, got)
}

func TestExtractJSONArray_NoArray(t *testing.T) {
	_, err := ExtractJSONArray("I could not identify any themes.")
	assert.Error(t, err)
}

func TestParseThemeList(t *testing.T) {
	themes, err := parseThemeList("The themes are:\n[\"Amazing grace\", \"Trusting God\", 3]")
	require.NoError(t, err)
	assert.Equal(t, []string{"Amazing grace", "Trusting God", "3"}, themes)
}
