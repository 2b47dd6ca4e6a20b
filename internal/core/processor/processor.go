package processor

import (
	"fmt"

	"github.com/docuglot/backend/internal/domain"
)

// Processor decomposes one document into translation units and rebuilds the
// output from the translated units. Implementations are stateful within one
// processing attempt: Chunk must be called before Reassemble so the processor
// can retain the decoded document structure between the two.
type Processor interface {
	Chunk(content []byte) ([]domain.TranslationUnit, error)
	Reassemble(units []domain.TranslationUnit) ([]byte, error)
}

// ForFormat selects the processor for a format. The switch is exhaustive over
// domain.FileFormat; a new format must be handled here to become reachable.
func ForFormat(format domain.FileFormat, maxChunkSize int) (Processor, error) {
	switch format {
	case domain.FormatText:
		return NewText(maxChunkSize), nil
	case domain.FormatMarkdown:
		return NewMarkdown(maxChunkSize), nil
	case domain.FormatWord:
		return NewWord(maxChunkSize), nil
	case domain.FormatPDF:
		return NewPDF(maxChunkSize), nil
	case domain.FormatCSV:
		return NewCSV(), nil
	case domain.FormatExcel:
		return NewExcel(), nil
	case domain.FormatSRT:
		return NewSRT(), nil
	case domain.FormatJSON:
		return NewJSON(), nil
	}
	return nil, fmt.Errorf("unsupported file format: %s", format)
}

// translatedOrSource returns the unit's translated text when the unit was
// resolved (including failure placeholders) and the source text otherwise.
func translatedOrSource(u domain.TranslationUnit) string {
	if u.Status == domain.UnitStatusPending || u.Translated == "" {
		return u.SourceText
	}
	return u.Translated
}
