package match

import (
	"time"

	"mangasync/internal/anilist"
	"mangasync/internal/library"
)

// Field names which candidate title variant produced a score. Source
// alternative titles prefix the candidate field with "alt_to_".
const (
	FieldRomaji  = "romaji"
	FieldEnglish = "english"
	FieldNative  = "native"
	FieldSynonym = "synonym"
	FieldNone    = "none"
)

// Status classifies a match result.
type Status string

const (
	// StatusMatched means the top candidate cleared the confidence
	// threshold and was selected automatically.
	StatusMatched Status = "matched"
	// StatusPending means no candidate was confident enough and the
	// entry awaits manual resolution.
	StatusPending Status = "pending"
	// StatusSkipped means the entry was deliberately excluded from
	// matching.
	StatusSkipped Status = "skipped"
	// StatusManual means a person picked the candidate by hand.
	StatusManual Status = "manual"
)

// Candidate pairs a catalog record with the confidence that it is the
// same work as the source entry.
type Candidate struct {
	Media        anilist.Media
	Confidence   float64
	MatchedField string
	IsExact      bool
}

// Result is the outcome of matching one source entry against its
// candidate list. Selected is set only when Status is StatusMatched.
type Result struct {
	Source     library.SourceEntry
	Candidates []Candidate
	Selected   *anilist.Media
	Status     Status
	MatchDate  time.Time
}
