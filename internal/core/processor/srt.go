package processor

import (
	"regexp"
	"strings"

	"github.com/docuglot/backend/internal/domain"
)

// SRTProcessor translates one subtitle block at a time. Index and timecode
// lines pass through untouched; translated text is re-split on newlines to
// restore the original line layout where the translation allows it.
type SRTProcessor struct {
	blocks []srtBlock
}

type srtBlock struct {
	index    string
	timecode string
	lines    []string
}

func NewSRT() *SRTProcessor {
	return &SRTProcessor{}
}

var (
	srtBlockSeparator = regexp.MustCompile(`\r?\n\r?\n`)
	srtLineSeparator  = regexp.MustCompile(`\r?\n`)
)

func (p *SRTProcessor) Chunk(content []byte) ([]domain.TranslationUnit, error) {
	text := strings.TrimSpace(string(content))
	if text == "" {
		return nil, nil
	}

	var units []domain.TranslationUnit
	for _, part := range srtBlockSeparator.Split(text, -1) {
		lines := srtLineSeparator.Split(part, -1)
		if len(lines) < 3 {
			continue
		}
		block := srtBlock{
			index:    lines[0],
			timecode: lines[1],
			lines:    lines[2:],
		}
		p.blocks = append(p.blocks, block)
		units = append(units, domain.TranslationUnit{
			Position:   domain.Position{Chunk: len(p.blocks) - 1},
			SourceText: strings.Join(block.lines, "\n"),
			Status:     domain.UnitStatusPending,
		})
	}
	return units, nil
}

func (p *SRTProcessor) Reassemble(units []domain.TranslationUnit) ([]byte, error) {
	blocks := make([]srtBlock, len(p.blocks))
	copy(blocks, p.blocks)
	for _, u := range units {
		if u.Position.Chunk >= len(blocks) {
			continue
		}
		blocks[u.Position.Chunk].lines = strings.Split(translatedOrSource(u), "\n")
	}

	var parts []string
	for _, block := range blocks {
		section := append([]string{block.index, block.timecode}, block.lines...)
		parts = append(parts, strings.Join(section, "\n")+"\n")
	}
	return []byte(strings.Join(parts, "\n")), nil
}
