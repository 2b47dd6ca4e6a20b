package processor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/docuglot/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ExcelProcessor translates cell by cell across every sheet of a workbook.
// The decoded workbook is kept so reassembly only rewrites translated cells,
// leaving formatting and untouched cells as they were.
type ExcelProcessor struct {
	file *excelize.File
}

func NewExcel() *ExcelProcessor {
	return &ExcelProcessor{}
}

func (p *ExcelProcessor) Chunk(content []byte) ([]domain.TranslationUnit, error) {
	file, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("excel decode failed: %w", err)
	}
	p.file = file

	var units []domain.TranslationUnit
	for _, sheet := range file.GetSheetList() {
		rows, err := file.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("excel sheet %q read failed: %w", sheet, err)
		}
		cols := translatableColumns(rows)
		for row := 1; row < len(rows); row++ {
			for col := range rows[row] {
				if !cols[col] || strings.TrimSpace(rows[row][col]) == "" {
					continue
				}
				units = append(units, domain.TranslationUnit{
					Position:   domain.Position{Chunk: len(units), Sheet: sheet, Row: row, Col: col},
					SourceText: rows[row][col],
					Status:     domain.UnitStatusPending,
				})
			}
		}
	}
	return units, nil
}

func (p *ExcelProcessor) Reassemble(units []domain.TranslationUnit) ([]byte, error) {
	if p.file == nil {
		return nil, fmt.Errorf("excel reassemble called before chunk")
	}
	for _, u := range units {
		cell, err := excelize.CoordinatesToCellName(u.Position.Col+1, u.Position.Row+1)
		if err != nil {
			return nil, err
		}
		if err := p.file.SetCellValue(u.Position.Sheet, cell, translatedOrSource(u)); err != nil {
			return nil, fmt.Errorf("excel cell %s write failed: %w", cell, err)
		}
	}
	buf, err := p.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel encode failed: %w", err)
	}
	return buf.Bytes(), nil
}
