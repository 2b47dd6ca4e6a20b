package processor

import (
	"sort"

	"github.com/docuglot/backend/internal/domain"
)

// TextProcessor handles plain text and the extracted text of Word and PDF
// documents. Chunks are sequential prose: reassembly is concatenation in
// original order.
type TextProcessor struct {
	maxChunkSize int
	raw          string
}

func NewText(maxChunkSize int) *TextProcessor {
	return &TextProcessor{maxChunkSize: maxChunkSize}
}

func (p *TextProcessor) Chunk(content []byte) ([]domain.TranslationUnit, error) {
	p.raw = string(content)
	chunks := chunkText(p.raw, p.maxChunkSize)
	units := make([]domain.TranslationUnit, len(chunks))
	for i, chunk := range chunks {
		units[i] = domain.TranslationUnit{
			Position:   domain.Position{Chunk: i},
			SourceText: chunk,
			Status:     domain.UnitStatusPending,
		}
	}
	return units, nil
}

func (p *TextProcessor) Reassemble(units []domain.TranslationUnit) ([]byte, error) {
	if len(units) == 0 {
		return []byte(p.raw), nil
	}
	ordered := make([]domain.TranslationUnit, len(units))
	copy(ordered, units)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position.Chunk < ordered[j].Position.Chunk
	})
	var out []byte
	for _, u := range ordered {
		out = append(out, translatedOrSource(u)...)
	}
	return out, nil
}
