package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/glossary/pkg/types"
)

// DatabaseFile is the SQLite file name inside the data directory.
const DatabaseFile = "feedback.db"

// FeedbackLog stores feedback records in an insert-only SQLite table.
type FeedbackLog struct {
	mu   sync.Mutex
	path string
	db   *sql.DB
}

var _ types.FeedbackLog = (*FeedbackLog)(nil)

// Open creates dataDir if needed, opens (or creates) the database, and
// applies the schema. Failures wrap types.ErrWriteFailure since the log
// cannot accept records.
func Open(dataDir string) (*FeedbackLog, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating data dir: %v", types.ErrWriteFailure, err)
	}

	path := filepath.Join(dataDir, DatabaseFile)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", types.ErrWriteFailure, path, err)
	}
	// A single connection serializes writers inside the process; the busy
	// timeout covers other processes holding the file.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: configuring %s: %v", types.ErrWriteFailure, path, err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: applying schema: %v", types.ErrWriteFailure, err)
		}
	}

	return &FeedbackLog{path: path, db: db}, nil
}

// Path returns the database file location.
func (l *FeedbackLog) Path() string {
	return l.path
}

// Append inserts one record in its own transaction. Records with blank
// text are rejected with types.ErrFeedbackEmpty.
func (l *FeedbackLog) Append(record types.FeedbackRecord) error {
	if strings.TrimSpace(record.Text) == "" {
		return types.ErrFeedbackEmpty
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return fmt.Errorf("%w: %w", types.ErrWriteFailure, types.ErrLogClosed)
	}

	var name any
	if record.Name != "" {
		name = record.Name
	}

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin: %v", types.ErrWriteFailure, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO feedback (feedback_id, created_at, name, text) VALUES (?, ?, ?, ?)",
		generateUUID(),
		record.Timestamp.Format(types.TimestampLayout),
		name,
		record.Text,
	)
	if err != nil {
		return fmt.Errorf("%w: insert: %v", types.ErrWriteFailure, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", types.ErrWriteFailure, err)
	}
	return nil
}

// Records returns every record in insertion order.
func (l *FeedbackLog) Records() ([]types.FeedbackRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return nil, types.ErrLogClosed
	}

	rows, err := l.db.Query("SELECT created_at, name, text FROM feedback ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}
	defer rows.Close()

	records := []types.FeedbackRecord{}
	for rows.Next() {
		var (
			createdAt string
			name      sql.NullString
			text      string
		)
		if err := rows.Scan(&createdAt, &name, &text); err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		ts, err := time.ParseInLocation(types.TimestampLayout, createdAt, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", createdAt, err)
		}
		records = append(records, types.FeedbackRecord{
			Timestamp: ts,
			Name:      name.String,
			Text:      text,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feedback: %w", err)
	}
	return records, nil
}

// Close releases the database. Idempotent.
func (l *FeedbackLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

// generateUUID returns a UUID v7 row key, or a random v4 key when the
// clock-based generator fails.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
