package feedback

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mesh-intelligence/glossary/pkg/types"
)

// snippetLength is how many characters of the text the thank-you quotes.
const snippetLength = 50

// Messages shown to the user.
const (
	MsgThanks        = "Thank you for your feedback!"
	MsgNameRequired  = "Please enter your name before submitting."
	MsgFeedbackEmpty = "Please enter your feedback before submitting."
	MsgWriteFailure  = "Sorry, your feedback could not be saved. Please try again."
)

// Result is the outcome of one submission. The caller decides how long to
// show Message and whether to clear its input fields (it should on OK).
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Submitter validates feedback and appends it to a log.
type Submitter struct {
	log         types.FeedbackLog
	requireName bool
	now         func() time.Time
	logger      *slog.Logger
}

// NewSubmitter returns a Submitter writing to log. requireName selects the
// three-field variant. A nil logger uses slog.Default().
func NewSubmitter(log types.FeedbackLog, requireName bool, logger *slog.Logger) *Submitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{
		log:         log,
		requireName: requireName,
		now:         time.Now,
		logger:      logger,
	}
}

// RequireName reports whether submissions must carry a name.
func (s *Submitter) RequireName() bool {
	return s.requireName
}

// Submit trims and validates the input, stamps it, and appends it. A
// validation failure returns a non-OK Result and the validation error
// without touching the log. A write failure returns a non-OK Result and
// an error wrapping types.ErrWriteFailure.
func (s *Submitter) Submit(name, text string) (Result, error) {
	record := types.FeedbackRecord{
		Name: strings.TrimSpace(name),
		Text: strings.TrimSpace(text),
	}

	if err := Validate(record, s.requireName); err != nil {
		s.logger.Debug("feedback rejected", slog.String("reason", err.Error()))
		return Result{Message: validationMessage(err)}, err
	}

	record.Timestamp = s.now()
	if err := s.log.Append(record); err != nil {
		s.logger.Error("feedback append failed", slog.String("error", err.Error()))
		return Result{Message: MsgWriteFailure}, err
	}

	s.logger.Info("feedback recorded",
		slog.Bool("named", record.Name != ""),
		slog.Int("length", utf8.RuneCountInString(record.Text)),
	)
	return Result{OK: true, Message: thanks(record)}, nil
}

func validationMessage(err error) string {
	if errors.Is(err, types.ErrNameRequired) {
		return MsgNameRequired
	}
	return MsgFeedbackEmpty
}

// thanks builds the confirmation. Named submissions quote a snippet of
// the text back to the user.
func thanks(record types.FeedbackRecord) string {
	if record.Name == "" {
		return MsgThanks
	}
	return fmt.Sprintf("Thank you, %s! Your feedback: %s", record.Name, snippet(record.Text))
}

func snippet(text string) string {
	if utf8.RuneCountInString(text) <= snippetLength {
		return text
	}
	return string([]rune(text)[:snippetLength]) + "..."
}
