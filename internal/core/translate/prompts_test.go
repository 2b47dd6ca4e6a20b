package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuglot/backend/internal/domain"
)

func TestPromptForFormatSelection(t *testing.T) {
	assert.Equal(t, "markdown", PromptForFormat(domain.FormatMarkdown).Name)
	assert.Equal(t, "tabular", PromptForFormat(domain.FormatCSV).Name)
	assert.Equal(t, "tabular", PromptForFormat(domain.FormatExcel).Name)
	assert.Equal(t, "subtitle", PromptForFormat(domain.FormatSRT).Name)
	assert.Equal(t, "structured", PromptForFormat(domain.FormatJSON).Name)
	assert.Equal(t, genericPromptName, PromptForFormat(domain.FormatText).Name)
	assert.Equal(t, genericPromptName, PromptForFormat(domain.FormatPDF).Name)
}

func TestRenderSubstitutesParams(t *testing.T) {
	tpl, ok := PromptByName(genericPromptName)
	require.True(t, ok)

	rendered := tpl.Render(map[string]string{"source": "English", "target": "French", "formatting": ""})
	assert.Contains(t, rendered, "from English to French")
	assert.NotContains(t, rendered, "{{")
}

func TestRenderSystemPromptHonorsPreserveFormatting(t *testing.T) {
	on := renderSystemPrompt(domain.FormatText, domain.TranslationOptions{
		TargetLanguage:     "fr",
		PreserveFormatting: true,
	})
	off := renderSystemPrompt(domain.FormatText, domain.TranslationOptions{
		TargetLanguage: "fr",
	})

	assert.NotEqual(t, on, off)
	assert.Contains(t, on, "Preserve the original formatting")
	assert.NotContains(t, off, "Preserve the original formatting")
	assert.NotContains(t, off, "{{formatting}}")
}

func TestRenderLeavesMissingParams(t *testing.T) {
	tpl, ok := PromptByName(genericPromptName)
	require.True(t, ok)

	rendered := tpl.Render(map[string]string{"target": "French"})
	assert.Contains(t, rendered, "{{source}}")
}

func TestRenderSystemPromptAutoDetectsSource(t *testing.T) {
	rendered := renderSystemPrompt(domain.FormatText, domain.TranslationOptions{TargetLanguage: "German"})
	assert.Contains(t, rendered, "detect it automatically")
	assert.Contains(t, rendered, "German")
}

func TestListPromptsStableOrder(t *testing.T) {
	first := ListPrompts()
	second := ListPrompts()
	require.Equal(t, first, second)
	require.NotEmpty(t, first)

	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].Name, first[i].Name)
	}
}
