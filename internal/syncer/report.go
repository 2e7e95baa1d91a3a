package syncer

import (
	"time"

	"github.com/google/uuid"
)

// ReportError records one entry whose final outcome was a failure.
type ReportError struct {
	MediaID int    `json:"mediaId"`
	Title   string `json:"title"`
	Message string `json:"error"`
}

// Report is the terminal artifact of one batch invocation. It is
// immutable once returned and may be persisted to history.
type Report struct {
	ID                string        `json:"id"`
	Timestamp         time.Time     `json:"timestamp"`
	TotalEntries      int           `json:"totalEntries"`
	SuccessfulUpdates int           `json:"successfulUpdates"`
	FailedUpdates     int           `json:"failedUpdates"`
	Errors            []ReportError `json:"errors,omitempty"`
}

func newReport() *Report {
	return &Report{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
	}
}

func (r *Report) recordSuccess() {
	r.TotalEntries++
	r.SuccessfulUpdates++
}

func (r *Report) recordFailure(mediaID int, title, message string) {
	r.TotalEntries++
	r.FailedUpdates++
	r.Errors = append(r.Errors, ReportError{MediaID: mediaID, Title: title, Message: message})
}
