package translate

import (
	"context"
	"net/http"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuglot/backend/internal/config"
	"github.com/docuglot/backend/internal/domain"
	"github.com/docuglot/backend/internal/infrastructure/logger"
)

func apiError(t *testing.T, status int) *openai.Error {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "https://api.openai.com/v1/chat/completions", nil)
	require.NoError(t, err)
	return &openai.Error{
		StatusCode: status,
		Request:    req,
		Response:   &http.Response{StatusCode: status},
	}
}

func TestClassifyStatusCodes(t *testing.T) {
	assert.ErrorIs(t, classify(apiError(t, 401)), ErrAuth)
	assert.ErrorIs(t, classify(apiError(t, 403)), ErrAuth)
	assert.ErrorIs(t, classify(apiError(t, 429)), ErrRateLimit)
	assert.ErrorIs(t, classify(apiError(t, 500)), ErrServer)
	assert.ErrorIs(t, classify(apiError(t, 503)), ErrServer)

	// 4xx outside the mapped set passes through unchanged.
	err := classify(apiError(t, 400))
	assert.NotErrorIs(t, err, ErrAuth)
	assert.NotErrorIs(t, err, ErrRateLimit)
	assert.NotErrorIs(t, err, ErrServer)
}

func TestTranslateEmptyInputShortCircuits(t *testing.T) {
	// No API key configured: a real call would fail, proving the
	// short-circuit never reaches the network.
	client := NewClient(config.OpenAIConfig{Model: "gpt-3.5-turbo"}, logger.NewNop())

	out, err := client.Translate(context.Background(), "   \n ", domain.FormatText, domain.TranslationOptions{TargetLanguage: "fr"})
	require.NoError(t, err)
	assert.Equal(t, "   \n ", out)
}
