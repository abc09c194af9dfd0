package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAITagger suggests themes via an OpenAI-compatible chat endpoint.
// Works against api.openai.com and self-hosted compatible servers.
type OpenAITagger struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// OpenAIConfig holds configuration for the OpenAI-compatible tagger.
type OpenAIConfig struct {
	Endpoint string // Base URL, e.g. "https://api.openai.com/v1"
	Model    string
	APIKey   string // Optional for local endpoints
}

// NewOpenAITagger creates a tagger over an OpenAI-compatible endpoint.
func NewOpenAITagger(cfg *OpenAIConfig, logger *zap.Logger) (*OpenAITagger, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")

	return &OpenAITagger{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: logger.Named("openai-tagger"),
	}, nil
}

var _ ThemeTagger = (*OpenAITagger)(nil)

// SuggestThemes asks the model for free-form theme strings.
func (t *OpenAITagger) SuggestThemes(ctx context.Context, transcript string) ([]string, error) {
	start := time.Now()

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: taggerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: taggerPrompt(transcript)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	themes, err := parseThemeList(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	t.logger.Debug("Suggested themes",
		zap.String("model", t.model),
		zap.Int("theme_count", len(themes)),
		zap.Duration("duration", time.Since(start)))

	return themes, nil
}
