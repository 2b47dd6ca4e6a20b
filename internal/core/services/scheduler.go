package services

import (
	"context"
	"errors"
	"sync"

	"github.com/docuglot/backend/internal/core/translate"
	"github.com/docuglot/backend/internal/domain"
	"github.com/docuglot/backend/internal/infrastructure/logger"
)

// Scheduler admits pending tasks into the pipeline while keeping at most
// maxConcurrent of them in flight. Admission order is oldest createdAt first,
// so a retried task keeps its original place in line.
type Scheduler struct {
	store         *TaskStore
	pipeline      *Pipeline
	maxConcurrent int
	maxRetry      int
	log           *logger.Logger

	mu      sync.Mutex
	running int
	wg      sync.WaitGroup
}

func NewScheduler(store *TaskStore, pipeline *Pipeline, maxConcurrent, maxRetry int, log *logger.Logger) *Scheduler {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if maxRetry < 1 {
		maxRetry = 1
	}
	return &Scheduler{
		store:         store,
		pipeline:      pipeline,
		maxConcurrent: maxConcurrent,
		maxRetry:      maxRetry,
		log:           log,
	}
}

// Resume re-admits tasks that were mid-flight when the process last stopped,
// then fills the available slots. Called once at startup.
func (s *Scheduler) Resume(ctx context.Context) error {
	reset, err := s.store.ResetProcessing(ctx)
	if err != nil {
		return err
	}
	if reset > 0 {
		s.log.Infow("scheduler_resume_reset", "count", reset)
	}
	s.Kick(ctx)
	return nil
}

// Kick admits as many pending tasks as free slots allow. Safe to call from
// any goroutine; admission is serialized under the scheduler mutex so a task
// is never claimed twice.
func (s *Scheduler) Kick(ctx context.Context) {
	for {
		s.mu.Lock()
		if s.running >= s.maxConcurrent {
			s.mu.Unlock()
			return
		}

		task, err := s.claimOldestPending(ctx)
		if err != nil {
			s.mu.Unlock()
			if !errors.Is(err, ErrTaskNotFound) {
				s.log.Errorw("scheduler_claim_failed", "error", err)
			}
			return
		}

		s.running++
		s.mu.Unlock()

		s.wg.Add(1)
		go s.process(ctx, task.ID)
	}
}

// claimOldestPending flips the queue head to processing. Runs under s.mu.
func (s *Scheduler) claimOldestPending(ctx context.Context) (*domain.Task, error) {
	head, err := s.store.OldestPending(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.Mutate(ctx, head.ID, func(task *domain.Task) error {
		if task.Status != domain.TaskStatusPending {
			return ErrTaskNotFound
		}
		task.Status = domain.TaskStatusProcessing
		task.Progress = 0
		task.Error = ""
		return nil
	})
}

func (s *Scheduler) process(ctx context.Context, taskID string) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		s.running--
		s.mu.Unlock()
		s.Kick(ctx)
	}()

	task, err := s.store.Get(ctx, taskID)
	if err != nil {
		s.log.Errorw("scheduler_task_load_failed", "task_id", taskID, "error", err)
		return
	}

	s.log.Infow("task_processing_started", "task_id", taskID, "format", task.Format, "attempt", task.RetryCount+1)

	outputPath, runErr := s.pipeline.Run(ctx, task, func(progress int) {
		s.reportProgress(ctx, taskID, progress)
	})
	if runErr != nil {
		s.handleFailure(ctx, taskID, runErr)
		return
	}

	if _, err := s.store.Mutate(ctx, taskID, func(task *domain.Task) error {
		task.Status = domain.TaskStatusCompleted
		task.Progress = progressComplete
		task.OutputPath = outputPath
		task.Error = ""
		return nil
	}); err != nil {
		s.log.Errorw("task_complete_save_failed", "task_id", taskID, "error", err)
		return
	}
	s.log.Infow("task_completed", "task_id", taskID, "output", outputPath)
}

// reportProgress persists progress only when it advances, keeping the value
// monotonic within the attempt.
func (s *Scheduler) reportProgress(ctx context.Context, taskID string, progress int) {
	_, err := s.store.Mutate(ctx, taskID, func(task *domain.Task) error {
		if progress <= task.Progress {
			return errProgressStale
		}
		task.Progress = progress
		return nil
	})
	if err != nil && !errors.Is(err, errProgressStale) {
		s.log.Warnw("task_progress_save_failed", "task_id", taskID, "error", err)
	}
}

var errProgressStale = errors.New("scheduler: stale progress update")

// handleFailure applies the retry policy: the attempt is counted, then the
// task either rejoins the queue at its original position or fails for good.
// Credential rejections burn all remaining attempts since retrying cannot
// change the outcome.
func (s *Scheduler) handleFailure(ctx context.Context, taskID string, runErr error) {
	updated, err := s.store.Mutate(ctx, taskID, func(task *domain.Task) error {
		if errors.Is(runErr, translate.ErrAuth) {
			task.RetryCount = s.maxRetry
		} else {
			task.RetryCount++
		}
		task.Error = runErr.Error()
		if task.RetryCount >= s.maxRetry {
			task.Status = domain.TaskStatusFailed
		} else {
			task.Status = domain.TaskStatusPending
			task.Progress = 0
		}
		return nil
	})
	if err != nil {
		s.log.Errorw("task_failure_save_failed", "task_id", taskID, "error", err)
		return
	}

	if updated.Status == domain.TaskStatusFailed {
		s.log.Errorw("task_failed", "task_id", taskID, "attempts", updated.RetryCount, "error", runErr)
		return
	}
	s.log.Warnw("task_retry_queued", "task_id", taskID, "attempt", updated.RetryCount, "error", runErr)
}

// Wait blocks until in-flight tasks finish. Used by graceful shutdown.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
