package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/docuglot/backend/internal/domain"
)

// fakeTaskRepo is an in-memory TaskRepository with the same not-found
// behavior as the gorm implementation.
type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]domain.Task)}
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := task
	return &copy, nil
}

func (r *fakeTaskRepo) GetAll(ctx context.Context) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTaskRepo) GetByOwner(ctx context.Context, ownerToken string) ([]domain.Task, error) {
	all, _ := r.GetAll(ctx)
	var out []domain.Task
	for _, task := range all {
		if task.OwnerToken == ownerToken {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) OldestPending(ctx context.Context) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var oldest *domain.Task
	for id := range r.tasks {
		task := r.tasks[id]
		if task.Status != domain.TaskStatusPending {
			continue
		}
		if oldest == nil || task.CreatedAt.Before(oldest.CreatedAt) {
			copy := task
			oldest = &copy
		}
	}
	if oldest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return oldest, nil
}

func (r *fakeTaskRepo) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, task := range r.tasks {
		if task.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeTaskRepo) Save(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.UpdatedAt = time.Now()
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}

func (r *fakeTaskRepo) ResetProcessing(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var reset int64
	for id, task := range r.tasks {
		if task.Status == domain.TaskStatusProcessing {
			task.Status = domain.TaskStatusPending
			r.tasks[id] = task
			reset++
		}
	}
	return reset, nil
}

func (r *fakeTaskRepo) CreatedBefore(ctx context.Context, cutoff time.Time) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Task
	for _, task := range r.tasks {
		if task.CreatedAt.Before(cutoff) {
			out = append(out, task)
		}
	}
	return out, nil
}

type fakeBatchRepo struct {
	mu      sync.Mutex
	batches map[string]domain.BatchGroup
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: make(map[string]domain.BatchGroup)}
}

func (r *fakeBatchRepo) Create(ctx context.Context, batch *domain.BatchGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches[batch.BatchID] = *batch
	return nil
}

func (r *fakeBatchRepo) GetByID(ctx context.Context, batchID string) (*domain.BatchGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	batch, ok := r.batches[batchID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := batch
	return &copy, nil
}

func (r *fakeBatchRepo) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, batch := range r.batches {
		if batch.CreatedAt.Before(cutoff) {
			delete(r.batches, id)
			removed++
		}
	}
	return removed, nil
}
