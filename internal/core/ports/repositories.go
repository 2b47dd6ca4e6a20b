package ports

import (
	"context"
	"time"

	"github.com/docuglot/backend/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	GetAll(ctx context.Context) ([]domain.Task, error)
	GetByOwner(ctx context.Context, ownerToken string) ([]domain.Task, error)
	// OldestPending returns the pending task with the earliest createdAt, or
	// the repository's not-found error when the queue is empty.
	OldestPending(ctx context.Context) (*domain.Task, error)
	CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error)
	Save(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) (bool, error)
	// ResetProcessing flips every processing task back to pending. Called once
	// at startup so work interrupted by a crash is re-admitted.
	ResetProcessing(ctx context.Context) (int64, error)
	CreatedBefore(ctx context.Context, cutoff time.Time) ([]domain.Task, error)
}

type BatchRepository interface {
	Create(ctx context.Context, batch *domain.BatchGroup) error
	GetByID(ctx context.Context, batchID string) (*domain.BatchGroup, error)
	// DeleteCreatedBefore drops groupings older than the cutoff. Member tasks
	// are expired separately.
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
