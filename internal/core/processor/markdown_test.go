package processor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownRoundTripIdentity(t *testing.T) {
	input := "# Title\n\nSome intro text.\n\n```go\nfunc main() {}\n```\n\n## Section\n\nMore text here.\n"

	p := NewMarkdown(3000)
	units, err := p.Chunk([]byte(input))
	require.NoError(t, err)
	require.NotEmpty(t, units)

	markAllTranslated(units, func(s string) string { return s })
	out, err := p.Reassemble(units)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}

func TestMarkdownCodeBlockNeverSplit(t *testing.T) {
	code := "```\n" + strings.Repeat("line of code\n", 30) + "```\n"
	input := "Intro paragraph.\n\n" + code + "\nOutro."

	p := NewMarkdown(100)
	units, err := p.Chunk([]byte(input))
	require.NoError(t, err)

	// The fenced block must ride within a single unit even though it exceeds
	// the chunk bound.
	var holder string
	for _, u := range units {
		if strings.Contains(u.SourceText, "```") {
			holder = u.SourceText
			break
		}
	}
	require.NotEmpty(t, holder)
	assert.Contains(t, holder, code)

	markAllTranslated(units, func(s string) string { return s })
	out, err := p.Reassemble(units)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}

func TestMarkdownHeadingDetection(t *testing.T) {
	assert.True(t, isHeadingLine("# One"))
	assert.True(t, isHeadingLine("###### Six"))
	assert.False(t, isHeadingLine("####### Seven"))
	assert.False(t, isHeadingLine("#NoSpace"))
	assert.False(t, isHeadingLine("plain text"))
}
