package db

import (
	"context"
	"errors"
	"time"

	"github.com/docuglot/backend/internal/core/ports"
	"github.com/docuglot/backend/internal/domain"
	"github.com/docuglot/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

var ErrRecordNotFound = gorm.ErrRecordNotFound

type taskRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepository(db *gorm.DB, log *logger.Logger) ports.TaskRepository {
	return &taskRepository{db: db, log: log}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		r.log.Errorw("task_repo_create_failed", "id", task.ID, "error", err)
		return err
	}
	r.log.Infow("task_repo_create_ok", "id", task.ID, "file", task.FileInfo.OriginalName)
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) GetAll(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tasks).Error; err != nil {
		r.log.Errorw("task_repo_list_failed", "error", err)
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) GetByOwner(ctx context.Context, ownerToken string) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := r.db.WithContext(ctx).
		Where("owner_token = ?", ownerToken).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		r.log.Errorw("task_repo_list_by_owner_failed", "error", err)
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) OldestPending(ctx context.Context) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).
		Where("status = ?", domain.TaskStatusPending).
		Order("created_at ASC").
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *taskRepository) Save(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		r.log.Errorw("task_repo_save_failed", "id", task.ID, "error", err)
		return err
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id)
	if res.Error != nil {
		r.log.Errorw("task_repo_delete_failed", "id", id, "error", res.Error)
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *taskRepository) ResetProcessing(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("status = ?", domain.TaskStatusProcessing).
		Updates(map[string]any{"status": domain.TaskStatusPending, "updated_at": time.Now()})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		r.log.Infow("task_repo_reset_processing", "count", res.RowsAffected)
	}
	return res.RowsAffected, nil
}

func (r *taskRepository) CreatedBefore(ctx context.Context, cutoff time.Time) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// IsNotFound reports whether err is the repository's not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
