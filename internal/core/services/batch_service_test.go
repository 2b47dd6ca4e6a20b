package services

import (
	"archive/zip"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuglot/backend/internal/domain"
	"github.com/docuglot/backend/internal/infrastructure/logger"
)

func newBatchHarness(t *testing.T) (*BatchService, *harness) {
	t.Helper()
	h := newHarness(t, 2, 3, &scriptedTranslator{})
	translation := NewTranslationService(h.store, h.scheduler, h.files, logger.NewNop())
	svc := NewBatchService(newFakeBatchRepo(), translation, h.store, h.files, logger.NewNop())
	return svc, h
}

func batchFiles(names ...string) []BatchFile {
	files := make([]BatchFile, len(names))
	for i, name := range names {
		files[i] = BatchFile{Name: name, Size: 7, Reader: strings.NewReader("content")}
	}
	return files
}

func TestBatchCreateQueuesAllFiles(t *testing.T) {
	svc, h := newBatchHarness(t)

	batch, tasks, err := svc.Create(context.Background(), "owner", batchFiles("a.txt", "b.md"), domain.TranslationOptions{TargetLanguage: "fr"})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Len(t, batch.TaskIDs, 2)

	h.scheduler.Wait()
	progress, err := svc.Progress(context.Background(), "owner", batch.TaskIDs)
	require.NoError(t, err)
	assert.Equal(t, 2, progress.Total)
	assert.Equal(t, 2, progress.Completed)
	assert.Equal(t, 100, progress.Progress)
}

func TestBatchResolveReturnsMemberTasks(t *testing.T) {
	svc, _ := newBatchHarness(t)

	batch, _, err := svc.Create(context.Background(), "owner", batchFiles("a.txt", "b.md"), domain.TranslationOptions{TargetLanguage: "fr"})
	require.NoError(t, err)

	ids, err := svc.Resolve(context.Background(), batch.BatchID)
	require.NoError(t, err)
	assert.Equal(t, batch.TaskIDs, ids)
}

func TestBatchCreateRejectsEmpty(t *testing.T) {
	svc, _ := newBatchHarness(t)
	_, _, err := svc.Create(context.Background(), "owner", nil, domain.TranslationOptions{TargetLanguage: "fr"})
	assert.ErrorIs(t, err, ErrBatchEmpty)
}

func TestBatchCreateStopsOnInvalidFile(t *testing.T) {
	svc, _ := newBatchHarness(t)
	files := append(batchFiles("good.txt"), BatchFile{Name: "bad.png", Size: 7, Reader: strings.NewReader("content")})

	_, tasks, err := svc.Create(context.Background(), "owner", files, domain.TranslationOptions{TargetLanguage: "fr"})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	// The valid file before the bad one was already queued.
	assert.Len(t, tasks, 1)
}

func TestBatchResolveUnknownBatch(t *testing.T) {
	svc, _ := newBatchHarness(t)
	_, err := svc.Resolve(context.Background(), "no-such-batch")
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestBatchProgressRejectsEmptyTaskList(t *testing.T) {
	svc, _ := newBatchHarness(t)
	_, err := svc.Progress(context.Background(), "owner", nil)
	assert.ErrorIs(t, err, ErrBatchEmpty)
}

func TestBatchProgressSkipsDeletedTasks(t *testing.T) {
	svc, h := newBatchHarness(t)

	batch, _, err := svc.Create(context.Background(), "owner", batchFiles("a.txt"), domain.TranslationOptions{TargetLanguage: "fr"})
	require.NoError(t, err)
	h.scheduler.Wait()

	progress, err := svc.Progress(context.Background(), "owner", append(batch.TaskIDs, "long-gone"))
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Total)
	assert.Equal(t, 1, progress.Completed)
}

func TestBatchArchiveBundlesOutputs(t *testing.T) {
	svc, h := newBatchHarness(t)

	batch, _, err := svc.Create(context.Background(), "owner", batchFiles("a.txt", "b.txt"), domain.TranslationOptions{TargetLanguage: "fr"})
	require.NoError(t, err)
	h.scheduler.Wait()

	archivePath, err := svc.Archive(context.Background(), "owner", batch.TaskIDs)
	require.NoError(t, err)

	zr, err := zip.OpenReader(archivePath)
	require.NoError(t, err)
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"a_fr.txt", "b_fr.txt"}, names)
}

func TestBatchArchiveDeduplicatesNames(t *testing.T) {
	svc, h := newBatchHarness(t)

	// Two uploads with the same name produce two equally named outputs.
	batch, _, err := svc.Create(context.Background(), "owner", batchFiles("same.txt", "same.txt"), domain.TranslationOptions{TargetLanguage: "fr"})
	require.NoError(t, err)
	h.scheduler.Wait()

	archivePath, err := svc.Archive(context.Background(), "owner", batch.TaskIDs)
	require.NoError(t, err)

	zr, err := zip.OpenReader(archivePath)
	require.NoError(t, err)
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"same_fr.txt", "same_fr_1.txt"}, names)
}

func TestBatchArchiveRequiresCompletedOutputs(t *testing.T) {
	svc, h := newBatchHarness(t)

	batch, _, err := svc.Create(context.Background(), "owner", batchFiles("a.txt"), domain.TranslationOptions{TargetLanguage: "fr"})
	require.NoError(t, err)
	h.scheduler.Wait()

	// Force the task back to pending to simulate an unfinished batch.
	for _, id := range batch.TaskIDs {
		_, err := h.store.Mutate(context.Background(), id, func(task *domain.Task) error {
			task.Status = domain.TaskStatusPending
			task.OutputPath = ""
			return nil
		})
		require.NoError(t, err)
	}

	_, err = svc.Archive(context.Background(), "owner", batch.TaskIDs)
	assert.ErrorIs(t, err, ErrBatchNotCompleted)
}
