// Package render formats glossary entries for terminals and HTML. It holds
// no filtering logic; callers pass in the entries to show.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/glossary/pkg/types"
)

// User-facing messages.
const (
	NoResults = "No results found. Try adjusting your filters or search keywords."
	LearnMore = "Learn more"
)

// NoFiltersInfo is shown when neither filter is set.
func NoFiltersInfo(sources []string) string {
	return "No filters selected. Please choose a Source to see filtered results. Available sources: " +
		strings.Join(sources, ", ")
}

// Renderer formats entries in one style.
type Renderer struct {
	style string
	width int
	theme Theme
}

// New returns a Renderer for style (types.StyleCard or types.StylePlain).
// A positive width wraps card bodies; zero leaves lines unwrapped.
func New(style string, width int) Renderer {
	if style != types.StylePlain {
		style = types.StyleCard
	}
	return Renderer{style: style, width: width, theme: DefaultTheme}
}

// Style returns the renderer's style.
func (r Renderer) Style() string {
	return r.style
}

// Entries renders every entry, or NoResults when there are none.
func (r Renderer) Entries(entries []types.Entry) string {
	if len(entries) == 0 {
		return NoResults + "\n"
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(r.Entry(e))
		b.WriteString("\n")
	}
	return b.String()
}

// Entry renders a single entry.
func (r Renderer) Entry(e types.Entry) string {
	if r.style == types.StylePlain {
		return plainEntry(e)
	}
	return r.cardEntry(e)
}

// plainEntry lists each field on its own labelled line followed by a
// separator.
func plainEntry(e types.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Source: %s\n", e.Source)
	fmt.Fprintf(&b, "Category: %s\n", e.Category)
	fmt.Fprintf(&b, "Definition: %s\n", e.Definition)
	if e.HasLink() {
		fmt.Fprintf(&b, "%s: %s\n", LearnMore, e.Link)
	}
	b.WriteString("---")
	return b.String()
}

// cardEntry draws the category as a title, the definition as the body,
// and the source with an optional link in the footer, behind a thick
// accent bar on the left.
func (r Renderer) cardEntry(e types.Entry) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(r.theme.Title)
	bodyStyle := lipgloss.NewStyle().Foreground(r.theme.Body)
	footerStyle := lipgloss.NewStyle().Foreground(r.theme.Faint)
	linkStyle := lipgloss.NewStyle().Foreground(r.theme.Link).Underline(true)

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(r.theme.Accent).
		PaddingLeft(1)

	if r.width > 0 {
		inner := r.width - 2
		if inner < 10 {
			inner = 10
		}
		bodyStyle = bodyStyle.Width(inner)
	}

	footer := footerStyle.Render("Source: " + e.Source)
	if e.HasLink() {
		footer += footerStyle.Render(" | ") + linkStyle.Render(LearnMore+": "+e.Link)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(e.Category),
		bodyStyle.Render(e.Definition),
		footer,
	)
	return cardStyle.Render(content)
}

// Table writes entries as an aligned table with a total line.
func Table(w io.Writer, entries []types.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROW\tSOURCE\tCATEGORY\tDEFINITION\tLINK")
	fmt.Fprintln(tw, "---\t------\t--------\t----------\t----")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			e.Row,
			e.Source,
			e.Category,
			truncate(oneLine(e.Definition), 60),
			e.Link,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total: %d entr%s\n", len(entries), plural(len(entries)))
	return err
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
