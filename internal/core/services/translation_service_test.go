package services

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuglot/backend/internal/domain"
	"github.com/docuglot/backend/internal/infrastructure/logger"
)

func newServiceHarness(t *testing.T) (*TranslationService, *harness) {
	t.Helper()
	h := newHarness(t, 1, 3, &scriptedTranslator{})
	svc := NewTranslationService(h.store, h.scheduler, h.files, logger.NewNop())
	return svc, h
}

func TestCreateRejectsMissingTargetLanguage(t *testing.T) {
	svc, _ := newServiceHarness(t)
	_, err := svc.Create(context.Background(), "owner", "doc.txt", strings.NewReader("text"), 4, domain.TranslationOptions{})
	assert.ErrorIs(t, err, ErrTaskInvalidInput)
}

func TestCreateRejectsUnsupportedExtension(t *testing.T) {
	svc, _ := newServiceHarness(t)
	_, err := svc.Create(context.Background(), "owner", "image.png", strings.NewReader("data"), 4, domain.TranslationOptions{TargetLanguage: "fr"})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestCreateRejectsOversizedUpload(t *testing.T) {
	svc, h := newServiceHarness(t)
	size := int64(h.files.MaxUploadSize) + 1
	_, err := svc.Create(context.Background(), "owner", "big.txt", strings.NewReader("x"), size, domain.TranslationOptions{TargetLanguage: "fr"})
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestCreateQueuesAndProcesses(t *testing.T) {
	svc, h := newServiceHarness(t)

	task, err := svc.Create(context.Background(), "owner", "doc.txt", strings.NewReader("hello"), 5, domain.TranslationOptions{TargetLanguage: "fr"})
	require.NoError(t, err)
	assert.Equal(t, domain.FormatText, task.Format)
	assert.Equal(t, "doc.txt", task.OriginalName)

	h.scheduler.Wait()
	done, err := svc.Get(context.Background(), "owner", task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, done.Status)
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc, h := newServiceHarness(t)
	h.enqueueText(t, "theirs", "content", time.Now())

	_, err := svc.Get(context.Background(), "someone-else", "theirs")
	assert.ErrorIs(t, err, ErrTaskNotOwned)

	task, err := svc.Get(context.Background(), "owner", "theirs")
	require.NoError(t, err)
	assert.Equal(t, "theirs", task.ID)
}

func TestListReturnsOnlyOwnTasks(t *testing.T) {
	svc, h := newServiceHarness(t)
	h.enqueueText(t, "mine", "content", time.Now())

	other := &domain.Task{
		ID:         "other",
		FileInfo:   domain.FileInfo{OriginalName: "o.txt", Format: domain.FormatText},
		Status:     domain.TaskStatusPending,
		OwnerToken: "stranger",
		CreatedAt:  time.Now(),
	}
	require.NoError(t, h.store.Create(context.Background(), other))

	tasks, err := svc.List(context.Background(), "owner")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "mine", tasks[0].ID)
}

func TestRetryRequiresTerminalState(t *testing.T) {
	svc, h := newServiceHarness(t)
	h.enqueueText(t, "pending-task", "content", time.Now())

	_, err := svc.Retry(context.Background(), "owner", "pending-task")
	assert.ErrorIs(t, err, ErrTaskNotRetryable)
}

func TestRetryResetsFailedTask(t *testing.T) {
	svc, h := newServiceHarness(t)
	h.enqueueText(t, "failed-task", "content", time.Now())
	_, err := h.store.Mutate(context.Background(), "failed-task", func(task *domain.Task) error {
		task.Status = domain.TaskStatusFailed
		task.RetryCount = 3
		task.Error = "gave up"
		return nil
	})
	require.NoError(t, err)

	task, err := svc.Retry(context.Background(), "owner", "failed-task")
	require.NoError(t, err)
	assert.Equal(t, 0, task.RetryCount)
	assert.Empty(t, task.Error)

	h.scheduler.Wait()
	done, err := svc.Get(context.Background(), "owner", "failed-task")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, done.Status)
}

func TestRetryRemovesStaleOutput(t *testing.T) {
	svc, h := newServiceHarness(t)
	h.enqueueText(t, "redo", "content", time.Now())

	h.scheduler.Kick(context.Background())
	h.scheduler.Wait()

	done, err := svc.Get(context.Background(), "owner", "redo")
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusCompleted, done.Status)
	stale := done.OutputPath
	_, err = os.Stat(stale)
	require.NoError(t, err)

	task, err := svc.Retry(context.Background(), "owner", "redo")
	require.NoError(t, err)
	assert.Empty(t, task.OutputPath)

	h.scheduler.Wait()
	_, err = svc.Get(context.Background(), "owner", "redo")
	require.NoError(t, err)
}

func TestRetryEnforcesOwnership(t *testing.T) {
	svc, h := newServiceHarness(t)
	h.enqueueText(t, "guarded", "content", time.Now())

	_, err := svc.Retry(context.Background(), "intruder", "guarded")
	assert.ErrorIs(t, err, ErrTaskNotOwned)
}

func TestDownloadRequiresCompletion(t *testing.T) {
	svc, h := newServiceHarness(t)
	h.enqueueText(t, "in-progress", "content", time.Now())

	_, _, err := svc.Download(context.Background(), "owner", "in-progress")
	assert.ErrorIs(t, err, ErrTaskNotCompleted)
}

func TestDownloadEnforcesOwnership(t *testing.T) {
	svc, h := newServiceHarness(t)
	h.enqueueText(t, "guarded", "content", time.Now())

	_, _, err := svc.Download(context.Background(), "intruder", "guarded")
	assert.ErrorIs(t, err, ErrTaskNotOwned)
}

func TestStatusCountsByState(t *testing.T) {
	svc, h := newServiceHarness(t)
	h.enqueueText(t, "one", "content", time.Now())
	h.scheduler.Kick(context.Background())
	h.scheduler.Wait()
	h.enqueueText(t, "two", "content", time.Now())

	// The second task was never kicked and stays pending.
	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.Pending)
	assert.Equal(t, int64(1), status.Completed)
}
