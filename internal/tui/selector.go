package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/glossary/internal/filter"
	"github.com/mesh-intelligence/glossary/internal/render"
)

// Selector is a single-choice list whose first option is filter.NoneOption.
// As a radio list every option is visible and moving the cursor selects.
// As a dropdown only the selection shows until Open is set; the cursor
// then browses and Choose commits.
type Selector struct {
	Label    string
	Options  []string
	Cursor   int
	Selected int
	Dropdown bool
	Open     bool
}

// NewSelector returns a Selector over None followed by values.
func NewSelector(label string, values []string, dropdown bool) Selector {
	options := make([]string, 0, len(values)+1)
	options = append(options, filter.NoneOption)
	options = append(options, values...)
	return Selector{Label: label, Options: options, Dropdown: dropdown}
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (s *Selector) MoveUp() {
	s.Cursor--
	if s.Cursor < 0 {
		s.Cursor = len(s.Options) - 1
	}
	if !s.Dropdown {
		s.Selected = s.Cursor
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (s *Selector) MoveDown() {
	s.Cursor++
	if s.Cursor >= len(s.Options) {
		s.Cursor = 0
	}
	if !s.Dropdown {
		s.Selected = s.Cursor
	}
}

// Choose commits the cursor as the selection and closes the dropdown.
func (s *Selector) Choose() {
	s.Selected = s.Cursor
	s.Open = false
}

// Close dismisses the dropdown, returning the cursor to the selection.
func (s *Selector) Close() {
	s.Cursor = s.Selected
	s.Open = false
}

// Value returns the selected option, with None mapped to "".
func (s Selector) Value() string {
	if s.Selected <= 0 || s.Selected >= len(s.Options) {
		return ""
	}
	return s.Options[s.Selected]
}

// View renders the selector. focused highlights the label.
func (s Selector) View(theme render.Theme, focused bool) string {
	labelStyle := lipgloss.NewStyle().Bold(true)
	if focused {
		labelStyle = labelStyle.Foreground(theme.FocusLabel)
	}
	markerStyle := lipgloss.NewStyle().Foreground(theme.Accent)
	faint := lipgloss.NewStyle().Foreground(theme.Faint)

	var b strings.Builder
	b.WriteString(labelStyle.Render(s.Label))
	b.WriteString("\n")

	if s.Dropdown && !s.Open {
		b.WriteString(" [ " + s.Options[s.Selected] + " ▾ ]")
		if focused {
			b.WriteString(faint.Render("  enter to change"))
		}
		return b.String()
	}

	for i, option := range s.Options {
		var line string
		switch {
		case s.Dropdown && i == s.Cursor:
			line = markerStyle.Render(" > ") + option
		case s.Dropdown:
			line = "   " + option
		case i == s.Selected:
			line = markerStyle.Render(" (•) ") + option
		default:
			line = " ( ) " + option
		}
		b.WriteString(line)
		if i < len(s.Options)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
