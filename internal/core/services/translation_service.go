package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docuglot/backend/internal/config"
	"github.com/docuglot/backend/internal/domain"
	"github.com/docuglot/backend/internal/infrastructure/logger"
)

// TranslationService is the API-facing surface for single tasks: intake,
// listing, retry, download and deletion. Ownership is enforced here, not in
// the transport layer.
type TranslationService struct {
	store     *TaskStore
	scheduler *Scheduler
	files     config.FilesConfig
	log       *logger.Logger
}

func NewTranslationService(store *TaskStore, scheduler *Scheduler, files config.FilesConfig, log *logger.Logger) *TranslationService {
	return &TranslationService{store: store, scheduler: scheduler, files: files, log: log}
}

// Create validates and stores an upload, queues the task and nudges the
// scheduler. The reader is consumed fully; size is the declared upload size.
func (s *TranslationService) Create(
	ctx context.Context,
	ownerToken, fileName string,
	src io.Reader,
	size int64,
	opts domain.TranslationOptions,
) (*domain.Task, error) {
	if strings.TrimSpace(opts.TargetLanguage) == "" {
		return nil, fmt.Errorf("%w: target language is required", ErrTaskInvalidInput)
	}
	if size > int64(s.files.MaxUploadSize) {
		return nil, ErrFileTooLarge
	}

	ext := filepath.Ext(fileName)
	format, ok := domain.FormatFromExtension(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %s (supported: %s)",
			ErrUnsupportedFormat, ext, strings.Join(domain.SupportedExtensions(), ", "))
	}

	id := uuid.New().String()
	storedPath := filepath.Join(s.files.UploadDir, id+ext)
	written, err := copyToFile(storedPath, src)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	if written > int64(s.files.MaxUploadSize) {
		os.Remove(storedPath)
		return nil, ErrFileTooLarge
	}

	now := time.Now()
	task := &domain.Task{
		ID: id,
		FileInfo: domain.FileInfo{
			OriginalName: filepath.Base(fileName),
			StoredPath:   storedPath,
			Size:         written,
			MimeType:     mime.TypeByExtension(strings.ToLower(ext)),
			Extension:    strings.TrimPrefix(strings.ToLower(ext), "."),
			Format:       format,
		},
		Options:    opts,
		Status:     domain.TaskStatusPending,
		OwnerToken: ownerToken,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Create(ctx, task); err != nil {
		os.Remove(storedPath)
		return nil, err
	}

	s.log.Infow("task_created", "task_id", id, "format", format, "target", opts.TargetLanguage, "size", written)
	s.scheduler.Kick(ctx)
	return task, nil
}

// Get returns a task if it exists and belongs to the requester.
func (s *TranslationService) Get(ctx context.Context, ownerToken, id string) (*domain.Task, error) {
	task, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.OwnerToken != ownerToken {
		return nil, ErrTaskNotOwned
	}
	return task, nil
}

// List returns the requester's tasks, newest first.
func (s *TranslationService) List(ctx context.Context, ownerToken string) ([]domain.Task, error) {
	return s.store.ListByOwner(ctx, ownerToken)
}

// Retry re-queues a finished task at its original queue position with a
// fresh attempt budget. Pending and processing tasks cannot be retried.
func (s *TranslationService) Retry(ctx context.Context, ownerToken, id string) (*domain.Task, error) {
	if _, err := s.Get(ctx, ownerToken, id); err != nil {
		return nil, err
	}
	task, err := s.store.Mutate(ctx, id, func(task *domain.Task) error {
		if !task.Terminal() {
			return ErrTaskNotRetryable
		}
		if task.OutputPath != "" {
			if err := os.Remove(task.OutputPath); err != nil && !os.IsNotExist(err) {
				s.log.Warnw("task_retry_stale_output_remove_failed", "task_id", task.ID, "error", err)
			}
		}
		task.Status = domain.TaskStatusPending
		task.Progress = 0
		task.RetryCount = 0
		task.Error = ""
		task.OutputPath = ""
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Infow("task_retry_requested", "task_id", id)
	s.scheduler.Kick(ctx)
	return task, nil
}

// Download resolves the output artifact for a completed task.
func (s *TranslationService) Download(ctx context.Context, ownerToken, id string) (path, name string, err error) {
	task, err := s.Get(ctx, ownerToken, id)
	if err != nil {
		return "", "", err
	}
	if task.Status != domain.TaskStatusCompleted || task.OutputPath == "" {
		return "", "", ErrTaskNotCompleted
	}
	return task.OutputPath, outputFileName(task), nil
}

// Delete removes the task and its files.
func (s *TranslationService) Delete(ctx context.Context, ownerToken, id string) error {
	if _, err := s.Get(ctx, ownerToken, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Infow("task_deleted", "task_id", id)
	return nil
}

// SystemStatus aggregates queue depth per status for the status endpoint.
type SystemStatus struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Failed     int64 `json:"failed"`
}

func (s *TranslationService) Status(ctx context.Context) (*SystemStatus, error) {
	var status SystemStatus
	for _, pair := range []struct {
		status domain.TaskStatus
		dest   *int64
	}{
		{domain.TaskStatusPending, &status.Pending},
		{domain.TaskStatusProcessing, &status.Processing},
		{domain.TaskStatusCompleted, &status.Completed},
		{domain.TaskStatusFailed, &status.Failed},
	} {
		count, err := s.store.CountByStatus(ctx, pair.status)
		if err != nil {
			return nil, err
		}
		*pair.dest = count
	}
	return &status, nil
}

func copyToFile(path string, src io.Reader) (int64, error) {
	dst, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	written, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return 0, err
	}
	return written, nil
}
