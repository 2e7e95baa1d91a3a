package library

import (
	"fmt"
	"strings"
	"time"
)

// Status is the reading state of a source entry.
type Status string

const (
	StatusReading    Status = "reading"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on_hold"
	StatusDropped    Status = "dropped"
	StatusPlanToRead Status = "plan_to_read"
)

// SourceEntry is one manga record from the imported library export.
// Score is on the tracker's 0-10 scale; 0 means unscored and is never
// synced as a literal zero.
type SourceEntry struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	AlternativeTitles []string  `json:"alternativeTitles,omitempty"`
	Status            Status    `json:"status"`
	Score             float64   `json:"score"`
	ChaptersRead      int       `json:"chaptersRead"`
	VolumesRead       int       `json:"volumesRead,omitempty"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Validate checks the invariants established at import time.
func (e SourceEntry) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("entry %s: title must not be empty", e.ID)
	}
	if e.ChaptersRead < 0 {
		return fmt.Errorf("entry %s: chapters read must not be negative", e.ID)
	}
	if e.Score < 0 || e.Score > 10 {
		return fmt.Errorf("entry %s: score %v outside 0-10", e.ID, e.Score)
	}
	switch e.Status {
	case StatusReading, StatusCompleted, StatusOnHold, StatusDropped, StatusPlanToRead:
	default:
		return fmt.Errorf("entry %s: unknown status %q", e.ID, e.Status)
	}
	return nil
}

// MediaListStatus maps the tracker status onto the AniList media list
// status enum.
func (s Status) MediaListStatus() string {
	switch s {
	case StatusReading:
		return "CURRENT"
	case StatusCompleted:
		return "COMPLETED"
	case StatusOnHold:
		return "PAUSED"
	case StatusDropped:
		return "DROPPED"
	case StatusPlanToRead:
		return "PLANNING"
	default:
		return ""
	}
}
