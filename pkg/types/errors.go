package types

import "errors"

// Load and persistence errors.
var (
	ErrDataUnavailable = errors.New("glossary data unavailable")
	ErrWriteFailure    = errors.New("feedback could not be written")
	ErrLogClosed       = errors.New("feedback log is closed")
)

// Feedback validation errors. These never reach FeedbackLog.Append.
var (
	ErrFeedbackEmpty = errors.New("feedback text must not be empty")
	ErrNameRequired  = errors.New("name must not be empty")
)
