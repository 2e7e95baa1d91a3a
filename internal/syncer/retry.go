package syncer

import "time"

// RetryPolicy decides how rate-limited steps are retried. The server's
// own retry-after wins when present; Fallback covers signals without a
// duration.
type RetryPolicy struct {
	MaxAttempts int
	Fallback    time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy matches the catalog's per-minute rate limit
// window.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Fallback:    60 * time.Second,
		MaxDelay:    5 * time.Minute,
	}
}

// Delay returns how long to wait before retrying the given outcome.
func (p RetryPolicy) Delay(outcome Outcome) time.Duration {
	delay := outcome.RetryAfter
	if delay <= 0 {
		delay = p.Fallback
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}
