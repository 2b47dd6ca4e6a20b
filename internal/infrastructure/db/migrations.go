package db

import (
	"github.com/docuglot/backend/internal/domain"
	"gorm.io/gorm"
)

// RunMigrations loads the persisted schema. Running it before the scheduler
// resumes is what makes every prior task visible again after a restart.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Task{},
		&domain.BatchGroup{},
	)
}
