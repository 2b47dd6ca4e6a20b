package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuglot/backend/internal/domain"
)

func TestJSONChunkExtractsStringLeaves(t *testing.T) {
	input := `{
  "title": "A good book",
  "year": 1998,
  "tags": ["fiction", "classic"],
  "meta": {
    "isbn": "12345",
    "summary": "An old story retold."
  }
}`

	p := NewJSON()
	units, err := p.Chunk([]byte(input))
	require.NoError(t, err)

	sources := make(map[string]string)
	for _, u := range units {
		sources[u.Position.Path] = u.SourceText
	}
	assert.Equal(t, "A good book", sources["title"])
	assert.Equal(t, "fiction", sources["tags[0]"])
	assert.Equal(t, "classic", sources["tags[1]"])
	assert.Equal(t, "An old story retold.", sources["meta.summary"])
	// Pure digits are machine data, not prose.
	assert.NotContains(t, sources, "meta.isbn")
}

func TestJSONIdentityRoundTripIsByteIdentical(t *testing.T) {
	input := `{
  "title": "A good book",
  "count": 3,
  "price": 12.5,
  "active": true,
  "missing": null,
  "tags": [
    "fiction",
    "classic"
  ],
  "empty": {},
  "none": []
}`

	p := NewJSON()
	units, err := p.Chunk([]byte(input))
	require.NoError(t, err)

	markAllTranslated(units, func(s string) string { return s })
	out, err := p.Reassemble(units)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}

func TestJSONKeyOrderPreserved(t *testing.T) {
	input := `{
  "zebra": "an animal",
  "apple": "a fruit"
}`

	p := NewJSON()
	units, err := p.Chunk([]byte(input))
	require.NoError(t, err)

	markAllTranslated(units, func(s string) string { return s })
	out, err := p.Reassemble(units)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}

func TestJSONReassembleAppliesTranslations(t *testing.T) {
	input := `{
  "greeting": "hello"
}`

	p := NewJSON()
	units, err := p.Chunk([]byte(input))
	require.NoError(t, err)
	require.Len(t, units, 1)

	units[0].Translated = "bonjour"
	units[0].Status = domain.UnitStatusDone

	out, err := p.Reassemble(units)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"greeting\": \"bonjour\"\n}", string(out))
}

func TestJSONSkipsMachineValues(t *testing.T) {
	input := `{
  "url": "https://example.com/page",
  "email": "user@example.com",
  "id": "550e8400-e29b-41d4-a716-446655440000",
  "when": "2024-01-15",
  "note": "please translate me"
}`

	p := NewJSON()
	units, err := p.Chunk([]byte(input))
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "note", units[0].Position.Path)
}

func TestJSONInvalidInput(t *testing.T) {
	p := NewJSON()
	_, err := p.Chunk([]byte(`{"broken":`))
	assert.Error(t, err)
}
