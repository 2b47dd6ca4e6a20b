package translate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/docuglot/backend/internal/domain"
	"github.com/docuglot/backend/internal/infrastructure/logger"
)

// FailureMode controls what happens when a single unit cannot be translated.
type FailureMode int

const (
	// FailFast aborts the whole document on the first failed unit. Used for
	// sequential prose formats where a gap would corrupt the output.
	FailFast FailureMode = iota

	// Placeholder keeps going and marks failed units with a placeholder so
	// cell-oriented documents still come out complete.
	Placeholder
)

const failedPlaceholder = "[translation failed]"

// ProgressFunc reports done/total resolved unit groups after each window.
type ProgressFunc func(done, total int)

// Executor runs the translation calls for one document attempt. Units whose
// source text normalizes to the same key are translated once and the result
// fanned out to every position.
type Executor struct {
	translator  Translator
	concurrency int
	windowDelay time.Duration
	log         *logger.Logger
}

func NewExecutor(translator Translator, concurrency int, windowDelay time.Duration, log *logger.Logger) *Executor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Executor{
		translator:  translator,
		concurrency: concurrency,
		windowDelay: windowDelay,
		log:         log,
	}
}

type unitGroup struct {
	source  string
	indexes []int
}

// Run translates units in place. With FailFast the first error is returned
// and remaining units stay pending; with Placeholder errors become
// placeholder translations and Run only fails when the context is done or
// credentials are rejected.
func (e *Executor) Run(
	ctx context.Context,
	units []domain.TranslationUnit,
	format domain.FileFormat,
	opts domain.TranslationOptions,
	mode FailureMode,
	progress ProgressFunc,
) error {
	groups := groupUnits(units)
	total := len(groups)
	done := 0

	for start := 0; start < total; start += e.concurrency {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := start + e.concurrency
		if end > total {
			end = total
		}
		window := groups[start:end]

		results := make([]string, len(window))
		errs := make([]error, len(window))
		var wg sync.WaitGroup
		for i, group := range window {
			wg.Add(1)
			go func(i int, group unitGroup) {
				defer wg.Done()
				results[i], errs[i] = e.translator.Translate(ctx, group.source, format, opts)
			}(i, group)
		}
		wg.Wait()

		for i, group := range window {
			if err := errs[i]; err != nil {
				if isAuth(err) || mode == FailFast {
					return err
				}
				e.log.Warnw("translate_unit_failed", "format", format, "error", err)
				applyGroup(units, group, failedPlaceholder+" "+group.source, domain.UnitStatusFailed)
				continue
			}
			applyGroup(units, group, results[i], domain.UnitStatusDone)
		}

		done = end
		if progress != nil {
			progress(done, total)
		}
		if e.windowDelay > 0 && end < total {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(e.windowDelay):
			}
		}
	}

	if progress != nil && total == 0 {
		progress(0, 0)
	}
	return nil
}

func applyGroup(units []domain.TranslationUnit, group unitGroup, translated string, status domain.UnitStatus) {
	for _, idx := range group.indexes {
		units[idx].Translated = translated
		units[idx].Status = status
	}
}

// groupUnits collapses units with equal normalized source text into one
// translation call, preserving first-seen order.
func groupUnits(units []domain.TranslationUnit) []unitGroup {
	var groups []unitGroup
	byKey := make(map[string]int)
	for i, u := range units {
		key := normalizeKey(u.SourceText)
		if pos, ok := byKey[key]; ok {
			groups[pos].indexes = append(groups[pos].indexes, i)
			continue
		}
		byKey[key] = len(groups)
		groups = append(groups, unitGroup{source: u.SourceText, indexes: []int{i}})
	}
	return groups
}

func normalizeKey(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

func isAuth(err error) bool {
	return errors.Is(err, ErrAuth)
}
