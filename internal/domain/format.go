package domain

import "strings"

// FileFormat is the closed set of supported document formats. Adding a format
// means extending every exhaustive switch over this type.
type FileFormat string

const (
	FormatText     FileFormat = "txt"
	FormatMarkdown FileFormat = "markdown"
	FormatWord     FileFormat = "word"
	FormatCSV      FileFormat = "csv"
	FormatExcel    FileFormat = "excel"
	FormatPDF      FileFormat = "pdf"
	FormatSRT      FileFormat = "srt"
	FormatJSON     FileFormat = "json"
)

var extensionFormats = map[string]FileFormat{
	"txt":      FormatText,
	"md":       FormatMarkdown,
	"markdown": FormatMarkdown,
	"docx":     FormatWord,
	"csv":      FormatCSV,
	"xlsx":     FormatExcel,
	"xls":      FormatExcel,
	"pdf":      FormatPDF,
	"srt":      FormatSRT,
	"json":     FormatJSON,
}

// FormatFromExtension maps a file extension (without the dot) to its format.
func FormatFromExtension(ext string) (FileFormat, bool) {
	f, ok := extensionFormats[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return f, ok
}

// SupportedExtensions lists every extension the service accepts.
func SupportedExtensions() []string {
	return []string{"txt", "md", "markdown", "docx", "csv", "xlsx", "xls", "pdf", "srt", "json"}
}

// Sequential reports whether the format is sequential prose, where one failed
// chunk invalidates the whole output. Non-sequential formats substitute a
// failure placeholder per unit instead.
func (f FileFormat) Sequential() bool {
	switch f {
	case FormatText, FormatMarkdown, FormatWord, FormatPDF, FormatSRT:
		return true
	}
	return false
}

// Staged reports whether the format's output is built in the temp directory
// before being moved to the output directory.
func (f FileFormat) Staged() bool {
	switch f {
	case FormatWord, FormatExcel, FormatPDF:
		return true
	}
	return false
}

// OutputExtension returns the extension of the translated artifact. Word and
// PDF inputs produce extracted plain text.
func (f FileFormat) OutputExtension(original string) string {
	switch f {
	case FormatWord, FormatPDF:
		return ".txt"
	}
	return original
}
