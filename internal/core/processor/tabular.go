package processor

import (
	"regexp"
	"strconv"
	"strings"
)

// Column classification for tabular formats (CSV, Excel): a column is worth
// translating when more than half of its sampled non-empty cells look like
// free text rather than numbers, dates or short codes.
const (
	columnSampleRows   = 10
	minTranslatableLen = 3
	freeTextThreshold  = 0.5
)

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`),
	regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`),
}

func isDatePattern(value string) bool {
	for _, p := range datePatterns {
		if p.MatchString(value) {
			return true
		}
	}
	return false
}

func isNumeric(value string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	return err == nil
}

func isFreeText(value string) bool {
	trimmed := strings.TrimSpace(value)
	if len([]rune(trimmed)) < minTranslatableLen {
		return false
	}
	return !isNumeric(trimmed) && !isDatePattern(trimmed)
}

// translatableColumns classifies each column of a table whose first row is a
// header. It samples up to columnSampleRows data rows per column.
func translatableColumns(rows [][]string) map[int]bool {
	cols := make(map[int]bool)
	if len(rows) < 2 {
		return cols
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	sample := rows[1:]
	if len(sample) > columnSampleRows {
		sample = sample[:columnSampleRows]
	}

	for col := 0; col < width; col++ {
		nonEmpty, freeText := 0, 0
		for _, row := range sample {
			if col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			nonEmpty++
			if isFreeText(cell) {
				freeText++
			}
		}
		if nonEmpty > 0 && float64(freeText)/float64(nonEmpty) > freeTextThreshold {
			cols[col] = true
		}
	}
	return cols
}
