// Package tui is the interactive glossary browser: a source selector, a
// keyword selector scoped to the chosen source, a scrollable result pane,
// and a feedback form.
package tui
