package services

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/docuglot/backend/internal/config"
	"github.com/docuglot/backend/internal/core/ports"
	"github.com/docuglot/backend/internal/infrastructure/logger"
)

// CleanupReport summarizes one cleanup run for the manual-trigger endpoint.
type CleanupReport struct {
	TasksRemoved     int `json:"tasksRemoved"`
	BatchesRemoved   int `json:"batchesRemoved"`
	TempFilesRemoved int `json:"tempFilesRemoved"`
}

// CleanupService expires old tasks and batch groupings and clears temp
// leftovers on a cron schedule, with an on-demand trigger for the admin
// endpoint.
type CleanupService struct {
	store   *TaskStore
	batches ports.BatchRepository
	files   config.FilesConfig
	expiry  time.Duration
	spec    string
	cron    *cron.Cron
	log     *logger.Logger
}

func NewCleanupService(store *TaskStore, batches ports.BatchRepository, files config.FilesConfig, tasks config.TasksConfig, log *logger.Logger) *CleanupService {
	return &CleanupService{
		store:   store,
		batches: batches,
		files:   files,
		expiry:  tasks.Expiry,
		spec:    tasks.CleanupCron,
		cron:    cron.New(),
		log:     log,
	}
}

// Start registers the scheduled run. Returns the schedule parse error, if
// any, so a bad cron spec fails startup instead of silently never running.
func (s *CleanupService) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		report, err := s.Run(ctx)
		if err != nil {
			s.log.Errorw("cleanup_run_failed", "error", err)
			return
		}
		s.log.Infow("cleanup_run_ok", "tasks_removed", report.TasksRemoved, "temp_files_removed", report.TempFilesRemoved)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *CleanupService) Stop() {
	s.cron.Stop()
}

// Run sweeps expired tasks and clears the temp directory. Individual
// deletions that fail are logged and skipped so one stuck file cannot wedge
// the whole sweep.
func (s *CleanupService) Run(ctx context.Context) (*CleanupReport, error) {
	report := &CleanupReport{}

	cutoff := time.Now().Add(-s.expiry)
	expired, err := s.store.Expired(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	for _, task := range expired {
		if err := s.store.Delete(ctx, task.ID); err != nil {
			s.log.Warnw("cleanup_task_delete_failed", "task_id", task.ID, "error", err)
			continue
		}
		report.TasksRemoved++
	}

	batches, err := s.batches.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	report.BatchesRemoved = int(batches)

	removed, err := s.clearTemp()
	if err != nil {
		return nil, err
	}
	report.TempFilesRemoved = removed
	return report, nil
}

func (s *CleanupService) clearTemp() (int, error) {
	entries, err := os.ReadDir(s.files.TempDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	removed := 0
	for _, entry := range entries {
		path := filepath.Join(s.files.TempDir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			s.log.Warnw("cleanup_temp_remove_failed", "path", path, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}
