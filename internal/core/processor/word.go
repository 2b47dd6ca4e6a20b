package processor

import (
	"bytes"
	"fmt"
	"strings"

	docx "github.com/fumiama/go-docx"

	"github.com/docuglot/backend/internal/domain"
)

// WordProcessor extracts the document's paragraph text and treats it as
// prose. The output artifact is the translated extracted text; the original
// document structure is not rebuilt.
type WordProcessor struct {
	text *TextProcessor
}

func NewWord(maxChunkSize int) *WordProcessor {
	return &WordProcessor{text: NewText(maxChunkSize)}
}

func (p *WordProcessor) Chunk(content []byte) ([]domain.TranslationUnit, error) {
	extracted, err := extractDocxText(content)
	if err != nil {
		return nil, err
	}
	return p.text.Chunk([]byte(extracted))
}

func (p *WordProcessor) Reassemble(units []domain.TranslationUnit) ([]byte, error) {
	return p.text.Reassemble(units)
}

func extractDocxText(content []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("docx open failed: %w", err)
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		var text string
		switch block := item.(type) {
		case *docx.Paragraph:
			text = block.String()
		case *docx.Table:
			text = block.String()
		default:
			continue
		}
		if strings.TrimSpace(text) != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	return strings.Join(paragraphs, "\n\n"), nil
}
