package db

import (
	"context"
	"time"

	"github.com/docuglot/backend/internal/core/ports"
	"github.com/docuglot/backend/internal/domain"
	"github.com/docuglot/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type batchRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBatchRepository(db *gorm.DB, log *logger.Logger) ports.BatchRepository {
	return &batchRepository{db: db, log: log}
}

func (r *batchRepository) Create(ctx context.Context, batch *domain.BatchGroup) error {
	if err := r.db.WithContext(ctx).Create(batch).Error; err != nil {
		r.log.Errorw("batch_repo_create_failed", "batch_id", batch.BatchID, "error", err)
		return err
	}
	r.log.Infow("batch_repo_create_ok", "batch_id", batch.BatchID, "tasks", len(batch.TaskIDs))
	return nil
}

func (r *batchRepository) GetByID(ctx context.Context, batchID string) (*domain.BatchGroup, error) {
	var batch domain.BatchGroup
	if err := r.db.WithContext(ctx).First(&batch, "batch_id = ?", batchID).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *batchRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&domain.BatchGroup{}, "created_at < ?", cutoff)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
