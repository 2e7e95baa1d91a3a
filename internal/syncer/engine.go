package syncer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tidwall/gjson"

	"mangasync/internal/anilist"
	"mangasync/internal/logging"
)

// Transport is the GraphQL request primitive the engine mutates
// through.
type Transport interface {
	Request(ctx context.Context, query string, variables map[string]any, token string) (gjson.Result, error)
}

// EngineOptions tune mutation behavior.
type EngineOptions struct {
	// NormalizeScores converts source 0-10 scores to the catalog's
	// 0-100 scale.
	NormalizeScores bool
	// ServerErrorRetry is the fixed backoff reported for 5xx-class
	// failures so the orchestrator's rate-limit path retries them.
	ServerErrorRetry time.Duration
}

// Engine issues single list mutations and classifies their outcomes.
type Engine struct {
	transport Transport
	opts      EngineOptions
	logger    *slog.Logger
}

// NewEngine builds a sync engine over the transport.
func NewEngine(transport Transport, opts EngineOptions, logger *slog.Logger) *Engine {
	if opts.ServerErrorRetry <= 0 {
		opts.ServerErrorRetry = 3 * time.Second
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{
		transport: transport,
		opts:      opts,
		logger:    logging.NewComponentLogger(logger, "syncer"),
	}
}

// UpdateEntry pushes one mutation and classifies the result. An empty
// token fails immediately without touching the network.
func (e *Engine) UpdateEntry(ctx context.Context, entry UpdateEntry, token string) Outcome {
	outcome := Outcome{MediaID: entry.MediaID}
	if token == "" {
		outcome.Err = "no authentication token provided"
		return outcome
	}

	vars := buildVariables(entry, e.opts.NormalizeScores)
	data, err := e.transport.Request(ctx, anilist.SaveMediaListEntryMutation, vars, token)
	if err != nil {
		return e.classify(outcome, err)
	}

	outcome.Success = true
	outcome.RemoteEntryID = int(data.Get("SaveMediaListEntry.id").Int())
	e.logger.Debug("entry updated",
		logging.Int("media_id", entry.MediaID),
		logging.Int("remote_entry_id", outcome.RemoteEntryID))
	return outcome
}

// DeleteEntry removes a remote list entry. A response without a truthy
// deleted flag counts as failure even when the transport succeeded.
func (e *Engine) DeleteEntry(ctx context.Context, entryID int, token string) error {
	if token == "" {
		return errors.New("no authentication token provided")
	}
	data, err := e.transport.Request(ctx, anilist.DeleteMediaListEntryMutation, map[string]any{"id": entryID}, token)
	if err != nil {
		return err
	}
	if !data.Get("DeleteMediaListEntry.deleted").Bool() {
		return errors.New("Delete failed")
	}
	return nil
}

// classify folds a transport error into the outcome taxonomy: rate
// limits and server errors are retryable with a wait, everything else
// is terminal for this attempt.
func (e *Engine) classify(outcome Outcome, err error) Outcome {
	var reqErr *anilist.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.RateLimited:
			outcome.RateLimited = true
			outcome.RetryAfter = reqErr.RetryAfter
		case reqErr.ServerError():
			outcome.RateLimited = true
			outcome.RetryAfter = e.opts.ServerErrorRetry
		}
	}
	outcome.Err = err.Error()
	return outcome
}
