// Package llm holds the upstream tagging collaborators: clients that
// ask a language model for free-form topical theme strings describing a
// sermon transcript. The strings are opaque here; matching them onto
// the canonical taxonomy happens downstream.
package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/haven-labs/sermon-engine/pkg/jsonutil"
)

// ThemeTagger produces raw theme strings for a transcript.
type ThemeTagger interface {
	SuggestThemes(ctx context.Context, transcript string) ([]string, error)
}

const taggerSystemPrompt = `You are a sermon content analyst. Given a sermon transcript,
identify the main spiritual themes it addresses. Respond with a JSON array of short
free-form theme phrases, most prominent first, at most 10 entries.
Example: ["God's forgiveness", "Amazing grace", "Walking by faith"]
Respond with the JSON array only.`

// maxTranscriptChars bounds what we send to the model; transcripts
// longer than this are truncated from the end.
const maxTranscriptChars = 48000

func taggerPrompt(transcript string) string {
	if len(transcript) > maxTranscriptChars {
		transcript = transcript[:maxTranscriptChars]
	}
	return fmt.Sprintf("Transcript:\n\n%s", transcript)
}

// parseThemeList extracts the theme strings from a model response that
// may wrap its JSON in prose, markdown fences, or thinking tags.
func parseThemeList(response string) ([]string, error) {
	jsonStr, err := ExtractJSONArray(response)
	if err != nil {
		return nil, fmt.Errorf("tagger response contained no JSON array: %w", err)
	}

	themes, err := jsonutil.FlexibleStringSlice(json.RawMessage(jsonStr))
	if err != nil {
		return nil, fmt.Errorf("parse tagger response: %w", err)
	}
	return themes, nil
}
