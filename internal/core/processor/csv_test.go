package processor

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuglot/backend/internal/domain"
)

func TestCSVChunkSelectsFreeTextCells(t *testing.T) {
	input := "id,name,price\n1,Red jacket,129.90\n2,Blue dress,59.00\n"

	p := NewCSV()
	units, err := p.Chunk([]byte(input))
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "Red jacket", units[0].SourceText)
	assert.Equal(t, 1, units[0].Position.Row)
	assert.Equal(t, 1, units[0].Position.Col)
	assert.Equal(t, "Blue dress", units[1].SourceText)
}

func TestCSVReassembleWritesTranslationsInPlace(t *testing.T) {
	input := "id,name\n1,Red jacket\n2,Blue dress\n"

	p := NewCSV()
	units, err := p.Chunk([]byte(input))
	require.NoError(t, err)
	require.Len(t, units, 2)

	units[0].Translated = "Veste rouge"
	units[0].Status = domain.UnitStatusDone
	units[1].Translated = "Robe bleue"
	units[1].Status = domain.UnitStatusDone

	out, err := p.Reassemble(units)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"id", "name"},
		{"1", "Veste rouge"},
		{"2", "Robe bleue"},
	}, records)
}

func TestCSVFailedUnitKeepsPlaceholder(t *testing.T) {
	input := "id,name\n1,Red jacket\n"

	p := NewCSV()
	units, err := p.Chunk([]byte(input))
	require.NoError(t, err)
	require.Len(t, units, 1)

	units[0].Translated = "[translation failed] Red jacket"
	units[0].Status = domain.UnitStatusFailed

	out, err := p.Reassemble(units)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "[translation failed] Red jacket", records[1][1])
}

func TestCSVEmptyInput(t *testing.T) {
	p := NewCSV()
	units, err := p.Chunk([]byte("  \n "))
	require.NoError(t, err)
	assert.Empty(t, units)
}

func TestCSVRaggedRows(t *testing.T) {
	input := "name,notes\nRed jacket,warm and comfortable\nBlue dress\n"

	p := NewCSV()
	units, err := p.Chunk([]byte(input))
	require.NoError(t, err)
	require.NotEmpty(t, units)

	_, err = p.Reassemble(units)
	require.NoError(t, err)
}
