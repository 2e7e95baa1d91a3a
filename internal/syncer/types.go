package syncer

import "time"

// PreviousValues is the last known remote state for an entry. Score is
// on the source's 0-10 scale. A nil PreviousValues on an UpdateEntry
// signals a first-time create.
type PreviousValues struct {
	Status   string
	Progress int
	Score    float64
	Private  bool
}

// Metadata carries incremental-sync bookkeeping for one update.
type Metadata struct {
	UseIncrementalSync bool
	// Step is 1-based within the incremental sequence; zero for plain
	// updates.
	Step           int
	TargetProgress int
	IsRetry        bool
	RetryCount     int
}

// UpdateEntry is one list mutation to push. Nil optional fields are
// omitted from the outgoing payload entirely.
type UpdateEntry struct {
	MediaID         int
	Title           string
	Status          string
	Progress        *int
	ProgressVolumes *int
	Score           *float64
	Private         *bool
	Previous        *PreviousValues
	Metadata        *Metadata
}

// Outcome classifies one mutation attempt.
type Outcome struct {
	MediaID       int
	Success       bool
	RemoteEntryID int
	Err           string
	RateLimited   bool
	RetryAfter    time.Duration
}

// Int returns a pointer to v, for building optional UpdateEntry fields.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
