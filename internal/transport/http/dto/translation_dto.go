package dto

import (
	"strings"
	"time"

	"github.com/docuglot/backend/internal/domain"
)

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// TranslationRequest carries the form fields accompanying an upload.
// PreserveFormatting defaults to on; only an explicit false turns it off.
type TranslationRequest struct {
	TargetLanguage     string `json:"targetLanguage" form:"targetLanguage"`
	SourceLanguage     string `json:"sourceLanguage" form:"sourceLanguage"`
	PreserveFormatting *bool  `json:"preserveFormatting" form:"preserveFormatting"`
}

func (r *TranslationRequest) Validate() []string {
	var errors []string
	if strings.TrimSpace(r.TargetLanguage) == "" {
		errors = append(errors, "targetLanguage is required")
	}
	return errors
}

func (r *TranslationRequest) Options() domain.TranslationOptions {
	preserve := true
	if r.PreserveFormatting != nil {
		preserve = *r.PreserveFormatting
	}
	return domain.TranslationOptions{
		TargetLanguage:     strings.TrimSpace(r.TargetLanguage),
		SourceLanguage:     strings.TrimSpace(r.SourceLanguage),
		PreserveFormatting: preserve,
	}
}

type TaskResponse struct {
	ID             string    `json:"taskId"`
	FileName       string    `json:"fileName"`
	Format         string    `json:"format"`
	Status         string    `json:"status"`
	Progress       int       `json:"progress"`
	TargetLanguage string    `json:"targetLanguage"`
	SourceLanguage string    `json:"sourceLanguage,omitempty"`
	RetryCount     int       `json:"retryCount"`
	Error          string    `json:"error,omitempty"`
	Downloadable   bool      `json:"downloadable"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func TaskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:             task.ID,
		FileName:       task.OriginalName,
		Format:         string(task.Format),
		Status:         string(task.Status),
		Progress:       task.Progress,
		TargetLanguage: task.Options.TargetLanguage,
		SourceLanguage: task.Options.SourceLanguage,
		RetryCount:     task.RetryCount,
		Error:          task.Error,
		Downloadable:   task.Status == domain.TaskStatusCompleted && task.OutputPath != "",
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

func TasksToResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, TaskToResponse(&tasks[i]))
	}
	return out
}

type BatchCreateResponse struct {
	BatchID string         `json:"batchId"`
	TaskIDs []string       `json:"taskIds"`
	Status  string         `json:"status"`
	Tasks   []TaskResponse `json:"tasks"`
}

// BatchQueryRequest addresses a set of tasks either directly by their ids or
// through the batch id returned at creation.
type BatchQueryRequest struct {
	BatchID string   `json:"batchId"`
	TaskIDs []string `json:"taskIds"`
}

func (r *BatchQueryRequest) Validate() []string {
	if len(r.TaskIDs) == 0 && strings.TrimSpace(r.BatchID) == "" {
		return []string{"taskIds or batchId is required"}
	}
	return nil
}

type PromptResponse struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Template    string   `json:"template"`
	Params      []string `json:"params"`
}

type PromptTestRequest struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params"`
}

type PromptTestResponse struct {
	Name     string `json:"name"`
	Rendered string `json:"rendered"`
}
