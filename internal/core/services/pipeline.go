package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docuglot/backend/internal/config"
	"github.com/docuglot/backend/internal/core/processor"
	"github.com/docuglot/backend/internal/core/translate"
	"github.com/docuglot/backend/internal/domain"
	"github.com/docuglot/backend/internal/infrastructure/logger"
)

// Progress bands for one processing attempt. Decoding the document owns the
// first band, translation the middle, encoding the rest.
const (
	progressDecoded     = 20
	progressTranslated  = 90
	progressComplete    = 100
	translationBandSpan = progressTranslated - progressDecoded
)

// Pipeline runs a single translation attempt end to end: read the upload,
// decompose it, translate the units, rebuild and write the output artifact.
type Pipeline struct {
	executor *translate.Executor
	files    config.FilesConfig
	chunkMax int
	log      *logger.Logger
}

func NewPipeline(executor *translate.Executor, files config.FilesConfig, chunkMax int, log *logger.Logger) *Pipeline {
	return &Pipeline{executor: executor, files: files, chunkMax: chunkMax, log: log}
}

// Run processes the task and returns the output path. report is invoked with
// absolute progress percentages; it must tolerate being called concurrently
// with other tasks' reports.
func (p *Pipeline) Run(ctx context.Context, task *domain.Task, report func(progress int)) (string, error) {
	content, err := os.ReadFile(task.StoredPath)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	proc, err := processor.ForFormat(task.Format, p.chunkMax)
	if err != nil {
		return "", err
	}
	units, err := proc.Chunk(content)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", task.Format, err)
	}
	report(progressDecoded)

	mode := translate.Placeholder
	if task.Format.Sequential() {
		mode = translate.FailFast
	}
	err = p.executor.Run(ctx, units, task.Format, task.Options, mode, func(done, total int) {
		if total == 0 {
			report(progressTranslated)
			return
		}
		report(progressDecoded + translationBandSpan*done/total)
	})
	if err != nil {
		return "", fmt.Errorf("translate %s: %w", task.Format, err)
	}
	report(progressTranslated)

	output, err := proc.Reassemble(units)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", task.Format, err)
	}

	outputPath, err := p.writeOutput(task, output)
	if err != nil {
		return "", err
	}
	report(progressComplete)
	return outputPath, nil
}

// writeOutput stages binary formats through the temp dir so a crash mid-write
// never leaves a truncated artifact in the output dir. The stored name is
// prefixed with the task id so same-named uploads never collide; the
// user-facing name comes from outputFileName.
func (p *Pipeline) writeOutput(task *domain.Task, output []byte) (string, error) {
	name := task.ID + "_" + outputFileName(task)
	finalPath := filepath.Join(p.files.OutputDir, name)

	if !task.Format.Staged() {
		if err := os.WriteFile(finalPath, output, 0o644); err != nil {
			return "", fmt.Errorf("write output: %w", err)
		}
		return finalPath, nil
	}

	stagedPath := filepath.Join(p.files.TempDir, name)
	if err := os.WriteFile(stagedPath, output, 0o644); err != nil {
		return "", fmt.Errorf("stage output: %w", err)
	}
	if err := os.Rename(stagedPath, finalPath); err != nil {
		return "", fmt.Errorf("publish output: %w", err)
	}
	return finalPath, nil
}

// OutputName is the user-facing artifact name for downloads and archives.
func OutputName(task *domain.Task) string {
	return outputFileName(task)
}

// outputFileName derives "<base>_<lang>.<ext>" from the original upload name.
// Formats whose output is extracted text swap the extension accordingly.
func outputFileName(task *domain.Task) string {
	base := task.OriginalName
	ext := filepath.Ext(base)
	base = base[:len(base)-len(ext)]
	outExt := task.Format.OutputExtension(ext)
	return fmt.Sprintf("%s_%s%s", base, task.Options.TargetLanguage, outExt)
}
