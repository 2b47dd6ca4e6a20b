package domain

type UnitStatus string

const (
	UnitStatusPending UnitStatus = "pending"
	UnitStatusDone    UnitStatus = "done"
	UnitStatusFailed  UnitStatus = "failed"
)

// Position is the structural locator of a unit inside its document: a chunk
// ordinal for prose, row/column for tables, a block index for subtitles or a
// path for JSON leaves. Translation results are applied back by position, not
// by completion order.
type Position struct {
	Chunk int    `json:"chunk"`
	Row   int    `json:"row,omitempty"`
	Col   int    `json:"col,omitempty"`
	Sheet string `json:"sheet,omitempty"`
	Path  string `json:"path,omitempty"`
}

// TranslationUnit is one independently translatable piece of content. Units
// exist only for the duration of one processing attempt.
type TranslationUnit struct {
	Position   Position
	SourceText string
	Translated string
	Status     UnitStatus
}
