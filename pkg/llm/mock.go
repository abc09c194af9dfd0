package llm

import "context"

// MockTagger is a ThemeTagger for tests.
type MockTagger struct {
	Themes []string
	Err    error

	// Calls records every transcript passed in.
	Calls []string
}

var _ ThemeTagger = (*MockTagger)(nil)

func (m *MockTagger) SuggestThemes(ctx context.Context, transcript string) ([]string, error) {
	m.Calls = append(m.Calls, transcript)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Themes, nil
}
