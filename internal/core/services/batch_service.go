package services

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docuglot/backend/internal/config"
	"github.com/docuglot/backend/internal/core/ports"
	"github.com/docuglot/backend/internal/domain"
	"github.com/docuglot/backend/internal/infrastructure/db"
	"github.com/docuglot/backend/internal/infrastructure/logger"
)

// BatchFile is one upload within a batch request.
type BatchFile struct {
	Name   string
	Size   int64
	Reader io.Reader
}

// BatchProgress is the aggregate view over a set of tasks: per-task states
// plus an overall percentage averaged across members.
type BatchProgress struct {
	Progress   int           `json:"progress"`
	Pending    int           `json:"pending"`
	Processing int           `json:"processing"`
	Completed  int           `json:"completed"`
	Failed     int           `json:"failed"`
	Total      int           `json:"total"`
	Tasks      []domain.Task `json:"tasks"`
}

// BatchService groups related uploads so their progress and outputs can be
// tracked and downloaded together.
type BatchService struct {
	batches     ports.BatchRepository
	translation *TranslationService
	store       *TaskStore
	files       config.FilesConfig
	log         *logger.Logger
}

func NewBatchService(
	batches ports.BatchRepository,
	translation *TranslationService,
	store *TaskStore,
	files config.FilesConfig,
	log *logger.Logger,
) *BatchService {
	return &BatchService{batches: batches, translation: translation, store: store, files: files, log: log}
}

// Create queues one task per file and records the grouping. Files that fail
// validation fail the whole batch before any task is queued from the
// remainder; tasks already created for earlier files stay queued since their
// uploads were accepted.
func (s *BatchService) Create(ctx context.Context, ownerToken string, files []BatchFile, opts domain.TranslationOptions) (*domain.BatchGroup, []domain.Task, error) {
	if len(files) == 0 {
		return nil, nil, ErrBatchEmpty
	}

	tasks := make([]domain.Task, 0, len(files))
	ids := make([]string, 0, len(files))
	for _, file := range files {
		task, err := s.translation.Create(ctx, ownerToken, file.Name, file.Reader, file.Size, opts)
		if err != nil {
			return nil, tasks, fmt.Errorf("batch file %q: %w", file.Name, err)
		}
		tasks = append(tasks, *task)
		ids = append(ids, task.ID)
	}

	batch := &domain.BatchGroup{
		BatchID:   uuid.New().String(),
		TaskIDs:   ids,
		CreatedAt: time.Now(),
	}
	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, tasks, err
	}

	s.log.Infow("batch_created", "batch_id", batch.BatchID, "files", len(files))
	return batch, tasks, nil
}

// Resolve expands a stored batch id into its member task ids.
func (s *BatchService) Resolve(ctx context.Context, batchID string) ([]string, error) {
	batch, err := s.get(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return batch.TaskIDs, nil
}

// Progress aggregates the states of the given tasks. Tasks deleted since
// batch creation are skipped rather than failing the whole view; tasks owned
// by someone else fail the request.
func (s *BatchService) Progress(ctx context.Context, ownerToken string, taskIDs []string) (*BatchProgress, error) {
	if len(taskIDs) == 0 {
		return nil, ErrBatchEmpty
	}

	progress := &BatchProgress{}
	sum := 0
	for _, id := range taskIDs {
		task, err := s.translation.Get(ctx, ownerToken, id)
		if err != nil {
			if errors.Is(err, ErrTaskNotFound) {
				continue
			}
			return nil, err
		}
		progress.Tasks = append(progress.Tasks, *task)
		progress.Total++
		sum += task.Progress
		switch task.Status {
		case domain.TaskStatusPending:
			progress.Pending++
		case domain.TaskStatusProcessing:
			progress.Processing++
		case domain.TaskStatusCompleted:
			progress.Completed++
		case domain.TaskStatusFailed:
			progress.Failed++
		}
	}
	if progress.Total > 0 {
		progress.Progress = sum / progress.Total
	}
	return progress, nil
}

// Archive bundles the completed outputs of the given tasks into a zip in the
// temp dir and returns its path. Duplicate artifact names get a numeric
// suffix.
func (s *BatchService) Archive(ctx context.Context, ownerToken string, taskIDs []string) (string, error) {
	if len(taskIDs) == 0 {
		return "", ErrBatchEmpty
	}

	var outputs []zipEntry
	for _, id := range taskIDs {
		task, err := s.translation.Get(ctx, ownerToken, id)
		if err != nil {
			if errors.Is(err, ErrTaskNotFound) {
				continue
			}
			return "", err
		}
		if task.Status == domain.TaskStatusCompleted && task.OutputPath != "" {
			outputs = append(outputs, zipEntry{path: task.OutputPath, name: outputFileName(task)})
		}
	}
	if len(outputs) == 0 {
		return "", ErrBatchNotCompleted
	}

	archivePath := filepath.Join(s.files.TempDir, fmt.Sprintf("batch_%s.zip", uuid.New().String()))
	if err := writeZip(archivePath, outputs); err != nil {
		return "", fmt.Errorf("batch archive: %w", err)
	}
	return archivePath, nil
}

func (s *BatchService) get(ctx context.Context, batchID string) (*domain.BatchGroup, error) {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}
	return batch, nil
}

type zipEntry struct {
	path string
	name string
}

func writeZip(archivePath string, entries []zipEntry) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	used := make(map[string]int)
	for _, entry := range entries {
		name := entry.name
		if n := used[entry.name]; n > 0 {
			ext := filepath.Ext(name)
			name = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), n, ext)
		}
		used[entry.name]++

		src, err := os.Open(entry.path)
		if err != nil {
			return err
		}
		dst, err := zw.Create(name)
		if err != nil {
			src.Close()
			return err
		}
		if _, err := io.Copy(dst, src); err != nil {
			src.Close()
			return err
		}
		src.Close()
	}
	return zw.Close()
}
