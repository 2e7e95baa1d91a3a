package syncer

import (
	"context"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"mangasync/internal/anilist"
)

func newTestOrchestrator(transport Transport) *Orchestrator {
	engine := NewEngine(transport, EngineOptions{NormalizeScores: true}, nil)
	return NewOrchestrator(engine, RetryPolicy{MaxAttempts: 3, Fallback: 60 * time.Second}, nil)
}

func TestSyncBatchCountsPerEntry(t *testing.T) {
	transport := &fakeTransport{handler: func(call int, query string, vars map[string]any) (gjson.Result, error) {
		if vars["mediaId"] == 2 {
			return gjson.Result{}, &testError{"boom"}
		}
		return gjson.Parse(`{"SaveMediaListEntry":{"id":1}}`), nil
	}}
	o := newTestOrchestrator(transport)

	entries := []UpdateEntry{
		{MediaID: 1, Title: "A", Progress: Int(1)},
		{MediaID: 2, Title: "B", Progress: Int(1)},
		{MediaID: 3, Title: "C", Progress: Int(1)},
	}
	var progressCalls int
	report := o.SyncBatch(context.Background(), entries, "token", func(current, total int, title string) {
		progressCalls++
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
	})

	if report.TotalEntries != 3 || report.SuccessfulUpdates != 2 || report.FailedUpdates != 1 {
		t.Fatalf("report = %+v", report)
	}
	if len(report.Errors) != 1 || report.Errors[0].MediaID != 2 || report.Errors[0].Title != "B" {
		t.Errorf("errors = %+v", report.Errors)
	}
	if progressCalls != 3 {
		t.Errorf("progress calls = %d, want 3", progressCalls)
	}
	if report.ID == "" || report.Timestamp.IsZero() {
		t.Error("report must carry id and timestamp")
	}
}

func TestSyncBatchIncrementalIssuesThreeCalls(t *testing.T) {
	transport := &fakeTransport{}
	o := newTestOrchestrator(transport)

	entries := []UpdateEntry{{
		MediaID:  30013,
		Title:    "One Piece",
		Status:   "CURRENT",
		Progress: Int(45),
		Previous: &PreviousValues{Status: "CURRENT", Progress: 40},
		Metadata: &Metadata{UseIncrementalSync: true},
	}}
	report := o.SyncBatch(context.Background(), entries, "token", nil)

	if len(transport.calls) != 3 {
		t.Fatalf("transport calls = %d, want exactly 3", len(transport.calls))
	}
	if got := transport.calls[0].vars["progress"]; got != 41 {
		t.Errorf("first call progress = %v, want 41", got)
	}
	if len(transport.calls[0].vars) != 2 {
		t.Errorf("first call vars = %v, want mediaId+progress only", transport.calls[0].vars)
	}
	if _, ok := transport.calls[2].vars["progress"]; ok {
		t.Error("third call must not carry progress")
	}
	// Three steps, one entry: counted once.
	if report.TotalEntries != 1 || report.SuccessfulUpdates != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestSyncBatchRetriesRateLimitTransparently(t *testing.T) {
	transport := &fakeTransport{handler: func(call int, query string, vars map[string]any) (gjson.Result, error) {
		if call == 0 {
			return gjson.Result{}, rateLimitedErr(7 * time.Second)
		}
		return gjson.Parse(`{"SaveMediaListEntry":{"id":1}}`), nil
	}}
	o := newTestOrchestrator(transport)

	var slept []time.Duration
	o.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	report := o.SyncBatch(context.Background(), []UpdateEntry{{MediaID: 1, Title: "A", Progress: Int(1)}}, "token", nil)
	if report.FailedUpdates != 0 || report.SuccessfulUpdates != 1 {
		t.Fatalf("report = %+v (transient rate limit must not count as failure)", report)
	}
	if len(slept) != 1 || slept[0] != 7*time.Second {
		t.Errorf("slept = %v, want one 7s backoff", slept)
	}
	if len(transport.calls) != 2 {
		t.Errorf("transport calls = %d, want 2", len(transport.calls))
	}
}

func TestSyncBatchRateLimitExhaustsAttempts(t *testing.T) {
	transport := &fakeTransport{handler: func(int, string, map[string]any) (gjson.Result, error) {
		return gjson.Result{}, rateLimitedErr(0)
	}}
	o := newTestOrchestrator(transport)
	var slept []time.Duration
	o.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	report := o.SyncBatch(context.Background(), []UpdateEntry{{MediaID: 1, Title: "A", Progress: Int(1)}}, "token", nil)
	if report.FailedUpdates != 1 {
		t.Fatalf("report = %+v", report)
	}
	if len(transport.calls) != 3 {
		t.Errorf("transport calls = %d, want MaxAttempts", len(transport.calls))
	}
	// No server-provided wait, so the fallback applies.
	for _, d := range slept {
		if d != 60*time.Second {
			t.Errorf("slept %v, want fallback 60s", d)
		}
	}
}

func TestSyncBatchCancellationStopsAtEntryBoundary(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	transport := &fakeTransport{handler: func(call int, query string, vars map[string]any) (gjson.Result, error) {
		cancel()
		return gjson.Parse(`{"SaveMediaListEntry":{"id":1}}`), nil
	}}
	o := newTestOrchestrator(transport)

	entries := []UpdateEntry{
		{MediaID: 1, Title: "A", Progress: Int(1)},
		{MediaID: 2, Title: "B", Progress: Int(1)},
		{MediaID: 3, Title: "C", Progress: Int(1)},
	}
	report := o.SyncBatch(ctx, entries, "token", nil)

	if len(transport.calls) != 1 {
		t.Fatalf("transport calls = %d, want 1 (no calls after cancellation)", len(transport.calls))
	}
	if report.TotalEntries != 1 || report.SuccessfulUpdates != 1 {
		t.Errorf("report = %+v, want only the first entry covered", report)
	}
}

func TestRetryFailedUpdatesStampsMetadata(t *testing.T) {
	transport := &fakeTransport{}
	o := newTestOrchestrator(transport)

	entries := []UpdateEntry{
		{MediaID: 1, Title: "A", Progress: Int(1)},
		{MediaID: 2, Title: "B", Progress: Int(1), Metadata: &Metadata{IsRetry: true, RetryCount: 1}},
		{MediaID: 3, Title: "C", Progress: Int(1), Metadata: &Metadata{TargetProgress: 5}},
		{MediaID: 4, Title: "D", Progress: Int(1)},
	}

	var seen []UpdateEntry
	o.updater = updaterFunc(func(ctx context.Context, entry UpdateEntry, token string) Outcome {
		seen = append(seen, entry)
		return Outcome{MediaID: entry.MediaID, Success: true}
	})

	report := o.RetryFailedUpdates(context.Background(), entries, []int{1, 2, 3}, "token", nil)
	if report.TotalEntries != 3 {
		t.Fatalf("report = %+v", report)
	}
	if len(seen) != 3 {
		t.Fatalf("updates = %d, want 3", len(seen))
	}
	if meta := seen[0].Metadata; meta == nil || !meta.IsRetry || meta.RetryCount != 0 {
		t.Errorf("first retry metadata = %+v, want IsRetry with count 0", seen[0].Metadata)
	}
	if meta := seen[1].Metadata; meta == nil || !meta.IsRetry || meta.RetryCount != 2 {
		t.Errorf("repeat retry metadata = %+v, want incremented count 2", seen[1].Metadata)
	}
	// Pre-existing metadata without the retry flag is still a first
	// retry and stays at 0.
	if meta := seen[2].Metadata; meta == nil || !meta.IsRetry || meta.RetryCount != 0 {
		t.Errorf("metadata-carrying first retry = %+v, want count 0", seen[2].Metadata)
	}
}

func TestRetryPolicyDelay(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, Fallback: time.Minute, MaxDelay: 2 * time.Minute}
	if got := policy.Delay(Outcome{RetryAfter: 10 * time.Second}); got != 10*time.Second {
		t.Errorf("delay = %v, want server-provided 10s", got)
	}
	if got := policy.Delay(Outcome{}); got != time.Minute {
		t.Errorf("delay = %v, want fallback", got)
	}
	if got := policy.Delay(Outcome{RetryAfter: time.Hour}); got != 2*time.Minute {
		t.Errorf("delay = %v, want capped", got)
	}
}

type updaterFunc func(ctx context.Context, entry UpdateEntry, token string) Outcome

func (f updaterFunc) UpdateEntry(ctx context.Context, entry UpdateEntry, token string) Outcome {
	return f(ctx, entry, token)
}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }

func rateLimitedErr(after time.Duration) error {
	return &anilist.RequestError{Status: 429, RateLimited: true, RetryAfter: after}
}
