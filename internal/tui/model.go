package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/glossary/internal/feedback"
	"github.com/mesh-intelligence/glossary/internal/filter"
	"github.com/mesh-intelligence/glossary/internal/render"
	"github.com/mesh-intelligence/glossary/pkg/types"
)

// statusDuration is how long a submission message stays on screen.
const statusDuration = 5 * time.Second

// minResultsHeight keeps the result pane usable on small terminals.
const minResultsHeight = 3

// Focus identifies the control receiving keyboard input.
type Focus int

const (
	FocusSource Focus = iota
	FocusKeyword
	FocusResults
	FocusName
	FocusText
	FocusSubmit
)

// Options configures the browser. Zero values select defaults.
type Options struct {
	Title         string
	Style         string // types.StyleCard or types.StylePlain.
	SourceControl string // types.ControlDropdown or types.ControlRadio.
}

// statusExpiredMsg clears the status line unless a newer status replaced it.
type statusExpiredMsg struct {
	seq int
}

// Model is the bubbletea model of the browser.
type Model struct {
	glossary  types.Glossary
	submitter *feedback.Submitter
	keys      KeyMap
	theme     render.Theme
	title     string
	style     string

	source        Selector
	keyword       Selector
	keywordSource string // Source the keyword options were computed for.
	entries       []types.Entry
	results       viewport.Model

	name textinput.Model
	text textarea.Model

	focus     Focus
	status    string
	statusOK  bool
	statusSeq int

	width  int
	height int
}

// New returns a browser over g that records feedback through sub.
func New(g types.Glossary, sub *feedback.Submitter, opts Options) Model {
	if opts.Title == "" {
		opts.Title = "Glossary"
	}

	name := textinput.New()
	name.Placeholder = "Your name"
	name.Prompt = "Name: "
	name.CharLimit = 200

	text := textarea.New()
	text.Placeholder = "Your feedback"
	text.ShowLineNumbers = false
	text.SetHeight(4)

	m := Model{
		glossary:  g,
		submitter: sub,
		keys:      DefaultKeyMap,
		theme:     render.DefaultTheme,
		title:     opts.Title,
		style:     opts.Style,
		source:    NewSelector("Filter by Source", g.Sources(), opts.SourceControl != types.ControlRadio),
		keyword:   NewSelector("Search", g.Categories(""), true),
		name:      name,
		text:      text,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts the browser on the terminal and blocks until it quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Query returns the active filter.
func (m Model) Query() filter.Query {
	return filter.Query{Source: m.source.Value(), Keyword: m.keyword.Value()}
}

// Entries returns the entries currently shown.
func (m Model) Entries() []types.Entry {
	return m.entries
}

// Focus returns the control with keyboard focus.
func (m Model) Focus() Focus {
	return m.focus
}

// Status returns the status line and whether it reports success.
func (m Model) Status() (string, bool) {
	return m.status, m.statusOK
}

// KeywordOptions returns the keyword selector's options, None first.
func (m Model) KeywordOptions() []string {
	return m.keyword.Options
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.text.SetWidth(max(msg.Width-4, 10))
		m.refresh()
	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)
	}
	m.layout()
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	if sel := m.openSelector(); sel != nil {
		switch {
		case key.Matches(msg, m.keys.Up):
			sel.MoveUp()
		case key.Matches(msg, m.keys.Down):
			sel.MoveDown()
		case key.Matches(msg, m.keys.Select):
			sel.Choose()
			m.selectionChanged()
		case key.Matches(msg, m.keys.Dismiss):
			sel.Close()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextFocus):
		return m, m.setFocus(m.nextFocus(1))
	case key.Matches(msg, m.keys.PrevFocus):
		return m, m.setFocus(m.nextFocus(-1))
	}

	if m.typing() {
		var cmd tea.Cmd
		if m.focus == FocusName {
			m.name, cmd = m.name.Update(msg)
		} else {
			m.text, cmd = m.text.Update(msg)
		}
		return m, cmd
	}

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.focus {
	case FocusSource:
		m.handleSelectorKey(&m.source, msg)
	case FocusKeyword:
		m.handleSelectorKey(&m.keyword, msg)
	case FocusResults:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.results.LineUp(1)
		case key.Matches(msg, m.keys.Down):
			m.results.LineDown(1)
		case key.Matches(msg, m.keys.PageUp):
			m.results.LineUp(max(m.results.Height, 1))
		case key.Matches(msg, m.keys.PageDown):
			m.results.LineDown(max(m.results.Height, 1))
		}
	case FocusSubmit:
		if key.Matches(msg, m.keys.Select) {
			return m.submit()
		}
	}
	return m, nil
}

// handleSelectorKey moves a radio list directly, or opens a dropdown.
func (m *Model) handleSelectorKey(sel *Selector, msg tea.KeyMsg) {
	switch {
	case sel.Dropdown && key.Matches(msg, m.keys.Select):
		sel.Cursor = sel.Selected
		sel.Open = true
	case !sel.Dropdown && key.Matches(msg, m.keys.Up):
		sel.MoveUp()
		m.selectionChanged()
	case !sel.Dropdown && key.Matches(msg, m.keys.Down):
		sel.MoveDown()
		m.selectionChanged()
	}
}

// openSelector returns the dropdown currently capturing input, if any.
func (m *Model) openSelector() *Selector {
	switch {
	case m.focus == FocusSource && m.source.Open:
		return &m.source
	case m.focus == FocusKeyword && m.keyword.Open:
		return &m.keyword
	}
	return nil
}

// selectionChanged rebuilds the keyword options, reset to None, when the
// source moved away from the one they were computed for. Then it
// refreshes the results.
func (m *Model) selectionChanged() {
	if src := m.source.Value(); src != m.keywordSource {
		m.keyword = NewSelector(m.keyword.Label, m.glossary.Categories(src), true)
		m.keywordSource = src
	}
	m.refresh()
}

// refresh recomputes the filtered entries and the result pane content.
func (m *Model) refresh() {
	q := m.Query()
	m.entries = m.glossary.Filter(q.Source, q.Keyword)

	width := 0
	if m.width > 4 {
		width = m.width - 4
	}

	var b strings.Builder
	if q.IsZero() {
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.Info).Width(max(width, 0)).Render(render.NoFiltersInfo(m.glossary.Sources())))
		b.WriteString("\n\n")
	}
	b.WriteString(render.New(m.style, width).Entries(m.entries))
	m.results.SetContent(b.String())
	m.results.GotoTop()
}

func (m Model) typing() bool {
	return m.focus == FocusName || m.focus == FocusText
}

// focusOrder lists the focusable controls. The name field exists only
// when submissions require a name.
func (m Model) focusOrder() []Focus {
	order := []Focus{FocusSource, FocusKeyword, FocusResults}
	if m.submitter.RequireName() {
		order = append(order, FocusName)
	}
	return append(order, FocusText, FocusSubmit)
}

func (m Model) nextFocus(step int) Focus {
	order := m.focusOrder()
	for i, f := range order {
		if f == m.focus {
			return order[(i+step+len(order))%len(order)]
		}
	}
	return order[0]
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.source.Close()
	m.keyword.Close()
	m.name.Blur()
	m.text.Blur()
	m.focus = f

	switch f {
	case FocusName:
		return m.name.Focus()
	case FocusText:
		return m.text.Focus()
	}
	return nil
}

// submit hands the form to the submitter and shows its message. The
// submitter logs write failures; the browser keeps running.
func (m Model) submit() (Model, tea.Cmd) {
	res, _ := m.submitter.Submit(m.name.Value(), m.text.Value())
	m.status = res.Message
	m.statusOK = res.OK
	m.statusSeq++
	if res.OK {
		m.name.Reset()
		m.text.Reset()
	}
	seq := m.statusSeq
	return m, tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

// layout gives the result pane whatever height the other sections leave.
func (m *Model) layout() {
	m.results.Width = max(m.width-2, 0)
	if m.height == 0 {
		return
	}
	fixed := lipgloss.Height(m.headerView()) + lipgloss.Height(m.footerView()) + 2
	m.results.Height = max(m.height-fixed, minResultsHeight)
}

// View implements tea.Model.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.resultsView(),
		m.footerView(),
	)
}

func (m Model) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent).Render(m.title)
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.source.View(m.theme, m.focus == FocusSource),
		m.keyword.View(m.theme, m.focus == FocusKeyword),
	)
}

func (m Model) resultsView() string {
	heading := lipgloss.NewStyle().Bold(true)
	if m.focus == FocusResults {
		heading = heading.Foreground(m.theme.FocusLabel)
	}
	count := fmt.Sprintf(" (%d)", len(m.entries))
	return lipgloss.JoinVertical(lipgloss.Left,
		heading.Render("Glossary Search Results")+lipgloss.NewStyle().Foreground(m.theme.Faint).Render(count),
		m.results.View(),
	)
}

func (m Model) footerView() string {
	label := func(text string, f Focus) string {
		s := lipgloss.NewStyle().Bold(true)
		if m.focus == f {
			s = s.Foreground(m.theme.FocusLabel)
		}
		return s.Render(text)
	}

	parts := []string{label("Feedback", FocusText)}
	if m.submitter.RequireName() {
		parts = append(parts, m.name.View())
	}
	parts = append(parts, m.text.View())

	button := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
	if m.focus == FocusSubmit {
		button = button.BorderForeground(m.theme.Accent).Foreground(m.theme.Accent)
	}
	parts = append(parts, button.Render("Submit"))

	if m.status != "" {
		color := m.theme.Success
		if !m.statusOK {
			color = m.theme.Error
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(color).Render(m.status))
	}

	help := "tab/S-tab focus • ↑/↓ move • enter select • C-s submit • q quit"
	if m.typing() {
		help = "tab/S-tab focus • C-s submit • C-c quit"
	}
	parts = append(parts, lipgloss.NewStyle().Foreground(m.theme.Faint).Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
