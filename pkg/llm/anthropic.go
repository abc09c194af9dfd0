package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

// AnthropicTagger suggests themes via the Anthropic Messages API.
type AnthropicTagger struct {
	client *anthropic.Client
	model  anthropic.Model
	logger *zap.Logger
}

// AnthropicConfig holds configuration for the Anthropic tagger.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// NewAnthropicTagger creates a tagger backed by the Anthropic API.
func NewAnthropicTagger(cfg *AnthropicConfig, logger *zap.Logger) (*AnthropicTagger, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &AnthropicTagger{
		client: anthropic.NewClient(cfg.APIKey),
		model:  anthropic.Model(cfg.Model),
		logger: logger.Named("anthropic-tagger"),
	}, nil
}

var _ ThemeTagger = (*AnthropicTagger)(nil)

// SuggestThemes asks the model for free-form theme strings.
func (t *AnthropicTagger) SuggestThemes(ctx context.Context, transcript string) ([]string, error) {
	start := time.Now()

	resp, err := t.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     t.model,
		System:    taggerSystemPrompt,
		MaxTokens: 1024,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: []anthropic.MessageContent{
				anthropic.NewTextMessageContent(taggerPrompt(transcript)),
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("messages request failed: %w", err)
	}

	var text string
	for _, content := range resp.Content {
		if content.Type == anthropic.MessagesContentTypeText && content.Text != nil {
			text += *content.Text
		}
	}

	themes, err := parseThemeList(text)
	if err != nil {
		return nil, err
	}

	t.logger.Debug("Suggested themes",
		zap.String("model", string(t.model)),
		zap.Int("theme_count", len(themes)),
		zap.Duration("duration", time.Since(start)))

	return themes, nil
}
