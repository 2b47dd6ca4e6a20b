package processor

import (
	"sort"
	"strings"

	"github.com/docuglot/backend/internal/domain"
)

// MarkdownProcessor splits on heading and fenced-code-block boundaries so
// neither is ever fragmented. Code blocks are kept whole regardless of size.
type MarkdownProcessor struct {
	maxChunkSize int
	raw          string
}

func NewMarkdown(maxChunkSize int) *MarkdownProcessor {
	return &MarkdownProcessor{maxChunkSize: maxChunkSize}
}

type markdownSegment struct {
	text string
	code bool
}

func isHeadingLine(line string) bool {
	trimmed := strings.TrimLeft(line, "#")
	hashes := len(line) - len(trimmed)
	return hashes >= 1 && hashes <= 6 && (strings.HasPrefix(trimmed, " ") || strings.HasPrefix(trimmed, "\t"))
}

func isFenceLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "```")
}

// splitMarkdownSegments cuts markdown into segments starting at headings and
// fenced code blocks. Concatenating the segments reproduces the input.
func splitMarkdownSegments(md string) []markdownSegment {
	if md == "" {
		return nil
	}
	lines := strings.SplitAfter(md, "\n")
	var segs []markdownSegment
	var cur strings.Builder
	inFence := false

	flush := func(code bool) {
		if cur.Len() > 0 {
			segs = append(segs, markdownSegment{text: cur.String(), code: code})
			cur.Reset()
		}
	}

	for _, line := range lines {
		if inFence {
			cur.WriteString(line)
			if isFenceLine(line) {
				inFence = false
				flush(true)
			}
			continue
		}
		if isFenceLine(line) {
			flush(false)
			cur.WriteString(line)
			inFence = true
			continue
		}
		if isHeadingLine(line) {
			flush(false)
		}
		cur.WriteString(line)
	}
	flush(inFence)
	return segs
}

func (p *MarkdownProcessor) Chunk(content []byte) ([]domain.TranslationUnit, error) {
	p.raw = string(content)
	if strings.TrimSpace(p.raw) == "" {
		return nil, nil
	}

	var chunks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
	}

	for _, seg := range splitMarkdownSegments(p.raw) {
		if seg.code {
			// Code blocks ride along whole; a chunk may exceed the bound
			// rather than split a fence.
			if cur.Len() > 0 && cur.Len()+len(seg.text) > p.maxChunkSize {
				flush()
			}
			cur.WriteString(seg.text)
			continue
		}
		if cur.Len() > 0 && cur.Len()+len(seg.text) > p.maxChunkSize {
			flush()
		}
		if len(seg.text) > p.maxChunkSize {
			flush()
			chunks = append(chunks, chunkText(seg.text, p.maxChunkSize)...)
			continue
		}
		cur.WriteString(seg.text)
		if cur.Len() >= p.maxChunkSize {
			flush()
		}
	}
	flush()

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

func (p *MarkdownProcessor) Reassemble(units []domain.TranslationUnit) ([]byte, error) {
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
