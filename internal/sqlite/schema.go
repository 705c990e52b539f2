// Package sqlite implements the SQLite feedback log backend.
package sqlite

// Schema DDL. Statements are idempotent so reopening an existing database
// keeps its rows.
const (
	createFeedback = `CREATE TABLE IF NOT EXISTS feedback (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    feedback_id TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL,
    name TEXT,
    text TEXT NOT NULL CHECK (length(trim(text)) > 0)
);`

	// Rows are never updated or deleted by the application.
	createNoUpdate = `CREATE TRIGGER IF NOT EXISTS feedback_no_update
BEFORE UPDATE ON feedback
BEGIN
    SELECT RAISE(ABORT, 'feedback is append-only');
END;`

	createNoDelete = `CREATE TRIGGER IF NOT EXISTS feedback_no_delete
BEFORE DELETE ON feedback
BEGIN
    SELECT RAISE(ABORT, 'feedback is append-only');
END;`

	idxFeedbackCreated = `CREATE INDEX IF NOT EXISTS idx_feedback_created ON feedback(created_at);`
)

// schemaDDL lists every statement in execution order.
var schemaDDL = []string{
	createFeedback,
	createNoUpdate,
	createNoDelete,
	idxFeedbackCreated,
}
