package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// TranslationOptions are the caller-supplied knobs for one task.
type TranslationOptions struct {
	TargetLanguage     string `json:"targetLanguage" gorm:"column:target_language"`
	SourceLanguage     string `json:"sourceLanguage,omitempty" gorm:"column:source_language"`
	PreserveFormatting bool   `json:"preserveFormatting" gorm:"column:preserve_formatting"`
}

// FileInfo describes the uploaded source document.
type FileInfo struct {
	OriginalName string     `json:"originalName"`
	StoredPath   string     `json:"storedPath"`
	Size         int64      `json:"size"`
	MimeType     string     `json:"mimeType"`
	Extension    string     `json:"extension"`
	Format       FileFormat `json:"format"`
}

// Task is the durable record of one translation job. Progress is 0-100 and
// resets at the start of every processing attempt.
type Task struct {
	ID         string             `json:"id" gorm:"primaryKey"`
	FileInfo   `json:"fileInfo" gorm:"embedded;embeddedPrefix:file_"`
	Options    TranslationOptions `json:"options" gorm:"embedded"`
	Status     TaskStatus         `json:"status" gorm:"index"`
	Progress   int                `json:"progress"`
	OutputPath string             `json:"outputPath,omitempty"`
	Error      string             `json:"error,omitempty"`
	RetryCount int                `json:"retryCount"`
	OwnerToken string             `json:"-" gorm:"index"`
	CreatedAt  time.Time          `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

func (Task) TableName() string { return "translation_tasks" }

// Terminal reports whether the task can no longer change on its own.
func (t *Task) Terminal() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusFailed
}
