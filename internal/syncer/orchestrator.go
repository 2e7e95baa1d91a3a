package syncer

import (
	"context"
	"log/slog"
	"time"

	"mangasync/internal/logging"
)

// Updater issues one mutation; satisfied by *Engine.
type Updater interface {
	UpdateEntry(ctx context.Context, entry UpdateEntry, token string) Outcome
}

// ProgressFunc is invoked after every mutation call with the 1-based
// entry index, the batch size, and the entry title.
type ProgressFunc func(current, total int, title string)

// Orchestrator drives the engine over a batch strictly sequentially.
// Sequential-with-backoff is the deliberate choice under the shared
// rate limit; there is no concurrent dispatch.
type Orchestrator struct {
	updater Updater
	policy  RetryPolicy
	logger  *slog.Logger

	// sleep is replaceable so retry sequences are testable without
	// real timers.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewOrchestrator builds a batch orchestrator around the updater.
func NewOrchestrator(updater Updater, policy RetryPolicy, logger *slog.Logger) *Orchestrator {
	if policy.MaxAttempts <= 0 {
		policy = DefaultRetryPolicy()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		updater: updater,
		policy:  policy,
		logger:  logging.NewComponentLogger(logger, "orchestrator"),
		sleep:   sleepCtx,
	}
}

// SyncBatch processes entries in input order, one at a time. Rate
// limited steps are retried transparently with the server-provided or
// fallback backoff. Cancellation is checked at entry boundaries only;
// the returned report covers the entries processed before the cancel.
func (o *Orchestrator) SyncBatch(ctx context.Context, entries []UpdateEntry, token string, progress ProgressFunc) *Report {
	report := newReport()
	total := len(entries)

	for i, entry := range entries {
		if ctx.Err() != nil {
			o.logger.Info("batch cancelled",
				logging.Int("processed", i),
				logging.Int("total", total))
			break
		}

		steps := []UpdateEntry{entry}
		if entry.Metadata != nil && entry.Metadata.UseIncrementalSync {
			steps = BuildIncrementalSteps(entry)
		}

		failed := false
		for _, step := range steps {
			outcome := o.runStep(ctx, step, token, i+1, total, progress)
			if !outcome.Success {
				report.recordFailure(entry.MediaID, entry.Title, outcome.Err)
				failed = true
				break
			}
		}
		if !failed {
			report.recordSuccess()
		}
	}

	o.logger.Info("batch finished",
		logging.Int("total", report.TotalEntries),
		logging.Int("succeeded", report.SuccessfulUpdates),
		logging.Int("failed", report.FailedUpdates))
	return report
}

// runStep issues one mutation, sleeping and retrying on rate-limit
// outcomes until the attempt budget runs out. A retry that ultimately
// succeeds leaves no trace in the report.
func (o *Orchestrator) runStep(ctx context.Context, step UpdateEntry, token string, current, total int, progress ProgressFunc) Outcome {
	var outcome Outcome
	for attempt := 1; ; attempt++ {
		outcome = o.updater.UpdateEntry(ctx, step, token)
		if progress != nil {
			progress(current, total, step.Title)
		}
		if outcome.Success || !outcome.RateLimited || attempt >= o.policy.MaxAttempts {
			return outcome
		}

		delay := o.policy.Delay(outcome)
		o.logger.Warn("rate limited, backing off",
			logging.Int("media_id", step.MediaID),
			logging.Duration("delay", delay),
			logging.Int("attempt", attempt))
		if err := o.sleep(ctx, delay); err != nil {
			outcome.Err = err.Error()
			return outcome
		}
	}
}

// RetryFailedUpdates narrows the batch to the given media ids, stamps
// each entry as a retry, and runs a fresh batch.
func (o *Orchestrator) RetryFailedUpdates(ctx context.Context, entries []UpdateEntry, failedIDs []int, token string, progress ProgressFunc) *Report {
	wanted := make(map[int]struct{}, len(failedIDs))
	for _, id := range failedIDs {
		wanted[id] = struct{}{}
	}

	var retries []UpdateEntry
	for _, entry := range entries {
		if _, ok := wanted[entry.MediaID]; !ok {
			continue
		}
		meta := Metadata{IsRetry: true}
		if entry.Metadata != nil {
			meta = *entry.Metadata
			// The count tracks repeat retries: the first retry of any
			// entry is 0 even when it already carries metadata.
			if meta.IsRetry {
				meta.RetryCount++
			}
			meta.IsRetry = true
		}
		entry.Metadata = &meta
		retries = append(retries, entry)
	}
	return o.SyncBatch(ctx, retries, token, progress)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
