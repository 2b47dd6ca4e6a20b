package services

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/docuglot/backend/internal/core/ports"
	"github.com/docuglot/backend/internal/domain"
	"github.com/docuglot/backend/internal/infrastructure/db"
	"github.com/docuglot/backend/internal/infrastructure/logger"
)

// TaskStore wraps the repository with per-task locking so concurrent
// mutations (scheduler progress updates, retry, delete) serialize per task
// instead of clobbering each other's read-modify-write cycles.
type TaskStore struct {
	repo  ports.TaskRepository
	locks sync.Map // task id -> *sync.Mutex
	log   *logger.Logger
}

func NewTaskStore(repo ports.TaskRepository, log *logger.Logger) *TaskStore {
	return &TaskStore{repo: repo, log: log}
}

func (s *TaskStore) lock(id string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	return s.repo.Create(ctx, task)
}

func (s *TaskStore) Get(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskStore) List(ctx context.Context) ([]domain.Task, error) {
	return s.repo.GetAll(ctx)
}

func (s *TaskStore) ListByOwner(ctx context.Context, ownerToken string) ([]domain.Task, error) {
	return s.repo.GetByOwner(ctx, ownerToken)
}

func (s *TaskStore) OldestPending(ctx context.Context) (*domain.Task, error) {
	task, err := s.repo.OldestPending(ctx)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskStore) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	return s.repo.CountByStatus(ctx, status)
}

// Mutate applies fn to the freshest copy of the task under its lock and
// persists the result. fn returning an error abandons the write.
func (s *TaskStore) Mutate(ctx context.Context, id string, fn func(task *domain.Task) error) (*domain.Task, error) {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(task); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the record and its files. Missing files are not an error;
// the record is what counts.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	task, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrTaskNotFound
	}
	s.locks.Delete(id)

	for _, path := range []string{task.StoredPath, task.OutputPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.log.Warnw("task_file_remove_failed", "task_id", id, "path", path, "error", err)
		}
	}
	return nil
}

// ResetProcessing re-admits tasks interrupted by a crash or restart.
func (s *TaskStore) ResetProcessing(ctx context.Context) (int64, error) {
	return s.repo.ResetProcessing(ctx)
}

// Expired lists tasks created before the cutoff for the cleanup sweep.
func (s *TaskStore) Expired(ctx context.Context, cutoff time.Time) ([]domain.Task, error) {
	return s.repo.CreatedBefore(ctx, cutoff)
}
