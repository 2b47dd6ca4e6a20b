package services

import "errors"

// Task errors
var (
	ErrTaskNotFound      = errors.New("task: not found")
	ErrTaskNotOwned      = errors.New("task: not owned by requester")
	ErrTaskNotRetryable  = errors.New("task: only completed or failed tasks can be retried")
	ErrTaskNotCompleted  = errors.New("task: output is only available for completed tasks")
	ErrTaskInvalidInput  = errors.New("task: invalid input")
	ErrUnsupportedFormat = errors.New("task: unsupported file format")
	ErrFileTooLarge      = errors.New("task: file exceeds the upload size limit")
)

// Batch errors
var (
	ErrBatchNotFound     = errors.New("batch: not found")
	ErrBatchEmpty        = errors.New("batch: no files supplied")
	ErrBatchNotCompleted = errors.New("batch: no completed outputs to download yet")
)
