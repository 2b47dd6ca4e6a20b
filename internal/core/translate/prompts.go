package translate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/docuglot/backend/internal/domain"
)

// PromptTemplate is one system-prompt recipe. Params are substituted as
// {{name}} markers before the prompt is sent.
type PromptTemplate struct {
	Name        string
	Description string
	Template    string
	Params      []string
}

const genericPromptName = "generic"

// formattingClause is substituted for {{formatting}} when the caller asked to
// keep the source layout.
const formattingClause = " Preserve the original formatting: keep line breaks, whitespace and punctuation placement as in the source."

var promptTemplates = map[string]PromptTemplate{
	genericPromptName: {
		Name:        genericPromptName,
		Description: "Default translation prompt for plain text content",
		Template: "You are a professional translator. Translate the user's text from {{source}} to {{target}}. " +
			"Preserve the original meaning, tone and register. " +
			"Return only the translated text with no commentary.{{formatting}}",
		Params: []string{"source", "target", "formatting"},
	},
	"markdown": {
		Name:        "markdown",
		Description: "Translation prompt that keeps Markdown structure intact",
		Template: "You are a professional translator. Translate the user's Markdown from {{source}} to {{target}}. " +
			"Keep all Markdown syntax exactly as written: headings, lists, links, emphasis markers and code blocks. " +
			"Never translate text inside code blocks or inline code. " +
			"Return only the translated Markdown with no commentary.{{formatting}}",
		Params: []string{"source", "target", "formatting"},
	},
	"tabular": {
		Name:        "tabular",
		Description: "Translation prompt for spreadsheet and CSV cell values",
		Template: "You are a professional translator. Translate the user's text from {{source}} to {{target}}. " +
			"The text is a single table cell value. Translate it as-is without adding punctuation, " +
			"quotes or explanation. Return only the translated value.{{formatting}}",
		Params: []string{"source", "target", "formatting"},
	},
	"subtitle": {
		Name:        "subtitle",
		Description: "Translation prompt for subtitle lines",
		Template: "You are a professional subtitle translator. Translate the user's subtitle text from {{source}} to {{target}}. " +
			"Keep line breaks where the translation allows and keep lines short enough to read on screen. " +
			"Return only the translated subtitle text.{{formatting}}",
		Params: []string{"source", "target", "formatting"},
	},
	"structured": {
		Name:        "structured",
		Description: "Translation prompt for values extracted from structured documents",
		Template: "You are a professional translator. Translate the user's text from {{source}} to {{target}}. " +
			"The text is a single field value from a structured document. Do not add quotes, escapes or " +
			"explanation. Return only the translated value.{{formatting}}",
		Params: []string{"source", "target", "formatting"},
	},
}

var formatPrompts = map[domain.FileFormat]string{
	domain.FormatMarkdown: "markdown",
	domain.FormatCSV:      "tabular",
	domain.FormatExcel:    "tabular",
	domain.FormatSRT:      "subtitle",
	domain.FormatJSON:     "structured",
}

// PromptForFormat returns the template used for a format, falling back to the
// generic prompt.
func PromptForFormat(format domain.FileFormat) PromptTemplate {
	if name, ok := formatPrompts[format]; ok {
		return promptTemplates[name]
	}
	return promptTemplates[genericPromptName]
}

// PromptByName looks a template up for the prompt listing and dry-run APIs.
func PromptByName(name string) (PromptTemplate, bool) {
	tpl, ok := promptTemplates[name]
	return tpl, ok
}

// ListPrompts returns all templates in stable name order.
func ListPrompts() []PromptTemplate {
	names := make([]string, 0, len(promptTemplates))
	for name := range promptTemplates {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]PromptTemplate, 0, len(names))
	for _, name := range names {
		out = append(out, promptTemplates[name])
	}
	return out
}

// Render substitutes {{param}} markers. Unknown params in the values map are
// ignored; markers without a value are left in place so the caller can see
// what is missing.
func (t PromptTemplate) Render(values map[string]string) string {
	rendered := t.Template
	for key, value := range values {
		rendered = strings.ReplaceAll(rendered, fmt.Sprintf("{{%s}}", key), value)
	}
	return rendered
}

func renderSystemPrompt(format domain.FileFormat, opts domain.TranslationOptions) string {
	source := opts.SourceLanguage
	if source == "" {
		source = "the source language (detect it automatically)"
	}
	formatting := ""
	if opts.PreserveFormatting {
		formatting = formattingClause
	}
	return PromptForFormat(format).Render(map[string]string{
		"source":     source,
		"target":     opts.TargetLanguage,
		"formatting": formatting,
	})
}
