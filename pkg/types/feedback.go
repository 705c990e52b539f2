package types

import "time"

// TimestampLayout formats feedback timestamps as YYYY-MM-DD HH:MM:SS.
const TimestampLayout = "2006-01-02 15:04:05"

// FeedbackRecord is a single user submission.
type FeedbackRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Name      string    `json:"name,omitempty"`
	Text      string    `json:"text"`
}

// FeedbackLog is an append-only store of feedback records.
type FeedbackLog interface {
	// Append writes record after any previously appended records.
	// Returns an error wrapping ErrWriteFailure if storage cannot be
	// opened or written.
	Append(record FeedbackRecord) error

	// Records returns every stored record in submission order.
	Records() ([]FeedbackRecord, error)

	// Close releases resources held by the log. Idempotent.
	Close() error
}
