package feedback

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mesh-intelligence/glossary/pkg/types"
)

// Header fields of the feedback file.
const (
	fieldTimestamp = "Timestamp"
	fieldName      = "Name"
	fieldFeedback  = "Feedback"
)

// CSVLog appends feedback records to a comma-delimited file. The file is
// created with a header row on first append and never rewritten.
type CSVLog struct {
	path     string
	withName bool

	mu     sync.Mutex
	closed bool
}

var _ types.FeedbackLog = (*CSVLog)(nil)

// NewCSVLog returns a log writing to path. withName selects the
// three-field shape (Timestamp, Name, Feedback); otherwise records carry
// Timestamp and Feedback only. The file is not touched until Append.
func NewCSVLog(path string, withName bool) *CSVLog {
	return &CSVLog{path: path, withName: withName}
}

// Path returns the log file location.
func (l *CSVLog) Path() string {
	return l.path
}

// Header returns the header row written to a new log file.
func (l *CSVLog) Header() []string {
	if l.withName {
		return []string{fieldTimestamp, fieldName, fieldFeedback}
	}
	return []string{fieldTimestamp, fieldFeedback}
}

// hasNameColumn reports whether a header row names the three-field shape.
func hasNameColumn(header []string) bool {
	return len(header) == 3 && header[1] == fieldName
}

func row(record types.FeedbackRecord, withName bool) []string {
	ts := record.Timestamp.Format(types.TimestampLayout)
	if withName {
		return []string{ts, record.Name, record.Text}
	}
	return []string{ts, record.Text}
}

// Append writes one record. Records with blank text are rejected with
// types.ErrFeedbackEmpty before the file is touched. The in-process mutex
// and an exclusive file lock are held for the whole write-and-flush and
// released on every path.
//
// An existing file keeps the shape its header names: a name is dropped
// when appending to a two-field file and left empty in a three-field one.
func (l *CSVLog) Append(record types.FeedbackRecord) error {
	if err := Validate(record, false); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return fmt.Errorf("%w: %w", types.ErrWriteFailure, types.ErrLogClosed)
	}
	if err := l.appendLocked(record); err != nil {
		return fmt.Errorf("%w: %s: %v", types.ErrWriteFailure, l.path, err)
	}
	return nil
}

func (l *CSVLog) appendLocked(record types.FeedbackRecord) (err error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing log: %w", cerr)
		}
	}()

	if err := lockFile(f); err != nil {
		return fmt.Errorf("locking log: %w", err)
	}
	defer unlockFile(f)

	// Size is checked under the lock so concurrent writers agree on who
	// writes the header.
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat log: %w", err)
	}

	withName := l.withName
	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(l.Header()); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	} else {
		header, err := csv.NewReader(io.NewSectionReader(f, 0, info.Size())).Read()
		if err != nil {
			return fmt.Errorf("reading header: %w", err)
		}
		withName = hasNameColumn(header)
	}
	if err := w.Write(row(record, withName)); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing record: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing log: %w", err)
	}
	return nil
}

// Records reads every record back in file order. A missing file has no
// records. The header decides whether rows carry a name column.
func (l *CSVLog) Records() ([]types.FeedbackRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return []types.FeedbackRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", l.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []types.FeedbackRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", l.path, err)
	}
	hasName := hasNameColumn(header)

	records := []types.FeedbackRecord{}
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", l.path, err)
		}
		rec, err := parseRow(fields, hasName)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", l.path, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(fields []string, hasName bool) (types.FeedbackRecord, error) {
	want := 2
	if hasName {
		want = 3
	}
	if len(fields) != want {
		return types.FeedbackRecord{}, fmt.Errorf("expected %d fields, got %d", want, len(fields))
	}
	ts, err := time.ParseInLocation(types.TimestampLayout, fields[0], time.Local)
	if err != nil {
		return types.FeedbackRecord{}, fmt.Errorf("parsing timestamp %q: %w", fields[0], err)
	}
	rec := types.FeedbackRecord{Timestamp: ts, Text: fields[len(fields)-1]}
	if hasName {
		rec.Name = fields[1]
	}
	return rec, nil
}

// Close marks the log closed. Later appends fail with ErrWriteFailure.
func (l *CSVLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}
