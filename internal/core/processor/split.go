package processor

import (
	"regexp"
	"strings"
)

var paragraphSeparator = regexp.MustCompile(`(?:\r?\n){2,}`)

// splitParagraphs cuts text into paragraphs, each keeping its trailing blank
// lines, so that concatenating the result reproduces the input byte for byte.
func splitParagraphs(text string) []string {
	if text == "" {
		return nil
	}
	var paras []string
	start := 0
	for _, sep := range paragraphSeparator.FindAllStringIndex(text, -1) {
		paras = append(paras, text[start:sep[1]])
		start = sep[1]
	}
	if start < len(text) {
		paras = append(paras, text[start:])
	}
	return paras
}

// splitSentences cuts text after runs of sentence terminators. Concatenating
// the result reproduces the input.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			j := i
			for j+1 < len(text) && (text[j+1] == '.' || text[j+1] == '!' || text[j+1] == '?') {
				j++
			}
			out = append(out, text[start:j+1])
			start = j + 1
			i = j
		}
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

// hardSlice cuts text into pieces of at most maxRunes runes, on rune
// boundaries. Last-resort splitting for pathological content with no
// paragraph or sentence structure.
func hardSlice(text string, maxRunes int) []string {
	var out []string
	start, count := 0, 0
	for i := range text {
		if count == maxRunes {
			out = append(out, text[start:i])
			start = i
			count = 0
		}
		count++
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

// chunkText packs text into chunks of at most maxSize characters without
// breaking paragraphs; paragraphs that exceed the bound fall back to sentence
// splitting, then hard slicing.
func chunkText(text string, maxSize int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
	}

	appendPiece := func(piece string) {
		if cur.Len() > 0 && cur.Len()+len(piece) > maxSize {
			flush()
		}
		if len(piece) > maxSize {
			flush()
			chunks = append(chunks, hardSlice(piece, maxSize)...)
			return
		}
		cur.WriteString(piece)
		if cur.Len() >= maxSize {
			flush()
		}
	}

	for _, para := range splitParagraphs(text) {
		if len(para) <= maxSize {
			appendPiece(para)
			continue
		}
		flush()
		for _, sentence := range splitSentences(para) {
			appendPiece(sentence)
		}
	}
	flush()
	return chunks
}
