package processor

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/docuglot/backend/internal/domain"
)

// CSVProcessor translates cell by cell. The header row and columns classified
// as non-translatable pass through unchanged.
type CSVProcessor struct {
	records [][]string
}

func NewCSV() *CSVProcessor {
	return &CSVProcessor{}
}

func (p *CSVProcessor) Chunk(content []byte) ([]domain.TranslationUnit, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv decode failed: %w", err)
	}
	p.records = records

	cols := translatableColumns(records)
	var units []domain.TranslationUnit
	for row := 1; row < len(records); row++ {
		for col := range records[row] {
			if !cols[col] || strings.TrimSpace(records[row][col]) == "" {
				continue
			}
			units = append(units, domain.TranslationUnit{
				Position:   domain.Position{Chunk: len(units), Row: row, Col: col},
				SourceText: records[row][col],
				Status:     domain.UnitStatusPending,
			})
		}
	}
	return units, nil
}

func (p *CSVProcessor) Reassemble(units []domain.TranslationUnit) ([]byte, error) {
	out := make([][]string, len(p.records))
	for i, row := range p.records {
		out[i] = append([]string(nil), row...)
	}
	for _, u := range units {
		if u.Position.Row >= len(out) || u.Position.Col >= len(out[u.Position.Row]) {
			return nil, fmt.Errorf("unit position %d:%d out of range", u.Position.Row, u.Position.Col)
		}
		out[u.Position.Row][u.Position.Col] = translatedOrSource(u)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(out); err != nil {
		return nil, fmt.Errorf("csv encode failed: %w", err)
	}
	return buf.Bytes(), nil
}
