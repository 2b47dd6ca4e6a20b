package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/docuglot/backend/internal/config"
	"github.com/docuglot/backend/internal/domain"
	"github.com/docuglot/backend/internal/infrastructure/logger"
)

const (
	completionTemperature = 0.3
	completionMaxTokens   = 4000
)

// Translator is the LLM boundary. The executor depends on this interface so
// tests can substitute a scripted implementation.
type Translator interface {
	Translate(ctx context.Context, text string, format domain.FileFormat, opts domain.TranslationOptions) (string, error)
	TestConnection(ctx context.Context) error
}

type Client struct {
	api   openai.Client
	model string
	log   *logger.Logger
}

func NewClient(cfg config.OpenAIConfig, log *logger.Logger) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	return &Client{
		api:   openai.NewClient(opts...),
		model: cfg.Model,
		log:   log,
	}
}

func (c *Client) Translate(ctx context.Context, text string, format domain.FileFormat, opts domain.TranslationOptions) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(renderSystemPrompt(format, opts)),
			openai.UserMessage(text),
		},
		Temperature: openai.Float(completionTemperature),
		MaxTokens:   openai.Int(completionMaxTokens),
	})
	if err != nil {
		classified := classify(err)
		c.log.Warnw("translate_request_failed", "model", c.model, "error", err)
		return "", classified
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrResponseFormat)
	}
	content := completion.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: empty completion", ErrResponseFormat)
	}
	return content, nil
}

// TestConnection issues a cheap authenticated call so startup can report a
// bad key or unreachable endpoint before the first task arrives.
func (c *Client) TestConnection(ctx context.Context) error {
	if _, err := c.api.Models.List(ctx); err != nil {
		return classify(err)
	}
	return nil
}

func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
			return fmt.Errorf("%w: %v", ErrAuth, err)
		case apiErr.StatusCode == 429:
			return fmt.Errorf("%w: %v", ErrRateLimit, err)
		case apiErr.StatusCode >= 500:
			return fmt.Errorf("%w: %v", ErrServer, err)
		}
	}
	return err
}
