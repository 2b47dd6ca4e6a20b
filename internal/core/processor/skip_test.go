package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldSkipTranslation(t *testing.T) {
	skipped := []string{
		"2024-01-15",
		"2024-01-15T10:30:00Z",
		"2024-01-15T10:30:00.123Z",
		"https://example.com/path?q=1",
		"www.example.com",
		"user@example.com",
		"550e8400-e29b-41d4-a716-446655440000",
		"1234567890",
		`{"key": "value"}`,
		"[1, 2, 3]",
		"<html></html>",
	}
	for _, value := range skipped {
		assert.True(t, shouldSkipTranslation(value), value)
	}

	translated := []string{
		"Hello world",
		"A sentence mentioning https://example.com inline",
		"Born on 2024-01-15 in Paris",
		"x123",
		"café",
	}
	for _, value := range translated {
		assert.False(t, shouldSkipTranslation(value), value)
	}
}
