package render

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette for terminal output.
type Theme struct {
	Accent     lipgloss.Color // Card border and selection marker.
	Title      lipgloss.Color
	Body       lipgloss.Color
	Faint      lipgloss.Color
	Link       lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
	FocusLabel lipgloss.Color
}

// DefaultTheme follows the glossary's pink accent.
var DefaultTheme = Theme{
	Accent:     lipgloss.Color("#FF37D5"),
	Title:      lipgloss.Color("252"),
	Body:       lipgloss.Color("250"),
	Faint:      lipgloss.Color("245"),
	Link:       lipgloss.Color("75"),
	Success:    lipgloss.Color("78"),
	Error:      lipgloss.Color("203"),
	Info:       lipgloss.Color("111"),
	FocusLabel: lipgloss.Color("#FF37D5"),
}
