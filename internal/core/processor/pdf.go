package processor

import (
	"bytes"
	"fmt"
	"io"

	"github.com/docuglot/backend/internal/domain"
	"github.com/ledongthuc/pdf"
)

// PDFProcessor extracts plain text from the document and chunks it like any
// other prose. The output artifact is the translated extracted text; layout
// is not reconstructed.
type PDFProcessor struct {
	text *TextProcessor
}

func NewPDF(maxChunkSize int) *PDFProcessor {
	return &PDFProcessor{text: NewText(maxChunkSize)}
}

func (p *PDFProcessor) Chunk(content []byte) ([]domain.TranslationUnit, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("pdf decode failed: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("pdf text extraction failed: %w", err)
	}
	extracted, err := io.ReadAll(plain)
	if err != nil {
		return nil, fmt.Errorf("pdf text extraction failed: %w", err)
	}
	return p.text.Chunk(extracted)
}

func (p *PDFProcessor) Reassemble(units []domain.TranslationUnit) ([]byte, error) {
	return p.text.Reassemble(units)
}
