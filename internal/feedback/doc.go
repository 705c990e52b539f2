// Package feedback validates and records user feedback. Records go to an
// append-only log: a comma-delimited file by default, or the SQLite
// backend from internal/sqlite.
//
// Submitter is the entry point for user-facing surfaces. It validates
// input before anything touches the log and reports the outcome as a
// Result the caller can display.
package feedback
