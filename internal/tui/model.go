// Package tui provides the BubbleTea-based one-shot picker. It runs the
// same ranking policies and candidate sources as the daemon, rendered in
// the terminal instead of an overlay window.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wlpick/internal/rank"
)

// pageStep matches the daemon's page movement.
const pageStep = 10

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12"))
	normalStyle   = lipgloss.NewStyle()
	secondStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// Source supplies and mutates candidates; a subset of the daemon's source.
type Source interface {
	Fetch() ([]rank.Candidate, error)
	Delete(c rank.Candidate) error
}

// Executor performs the payload action for the picked candidate.
type Executor interface {
	Execute(c rank.Candidate) error
}

// Options configures the picker.
type Options struct {
	Title       string
	Source      Source
	Executor    Executor
	Policy      rank.Policy
	AllowDelete bool
}

type fetchedMsg struct {
	items []rank.Candidate
	err   error
}

// Model is the picker's bubbletea model.
type Model struct {
	opts Options

	input textinput.Model
	help  help.Model
	keys  KeyMap

	candidates []rank.Candidate
	filtered   []rank.Candidate
	selected   int

	width, height int
	showHelp      bool
	statusMsg     string

	// Picked holds the selected candidate after the program exits.
	Picked *rank.Candidate
}

// New creates a picker model.
func New(opts Options) *Model {
	input := textinput.New()
	input.Placeholder = "Type to filter..."
	input.Prompt = "> "
	input.CharLimit = 200
	input.Focus()

	return &Model{
		opts:  opts,
		input: input,
		help:  help.New(),
		keys:  DefaultKeyMap(),
	}
}

// Init fetches the candidate list.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetch)
}

func (m *Model) fetch() tea.Msg {
	items, err := m.opts.Source.Fetch()
	return fetchedMsg{items: items, err: err}
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case fetchedMsg:
		if msg.err != nil {
			m.statusMsg = "fetch failed: " + msg.err.Error()
			m.candidates = nil
		} else {
			m.candidates = msg.items
		}
		m.refilter()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.move(1)
			return m, nil
		case key.Matches(msg, m.keys.PageUp):
			m.move(-pageStep)
			return m, nil
		case key.Matches(msg, m.keys.PageDown):
			m.move(pageStep)
			return m, nil
		case key.Matches(msg, m.keys.Home):
			m.setSelection(0)
			return m, nil
		case key.Matches(msg, m.keys.End):
			m.setSelection(len(m.filtered) - 1)
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.input.SetValue("")
			m.refilter()
			return m, nil
		case key.Matches(msg, m.keys.Select):
			return m, m.pick()
		case key.Matches(msg, m.keys.Delete):
			if m.opts.AllowDelete {
				return m, m.deleteSelected()
			}
			return m, nil
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.refilter()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) refilter() {
	m.filtered = m.opts.Policy.Filter(m.candidates, m.input.Value())
	m.selected = 0
}

func (m *Model) move(delta int) {
	m.setSelection(m.selected + delta)
}

func (m *Model) setSelection(i int) {
	if max := len(m.filtered) - 1; i > max {
		i = max
	}
	if i < 0 {
		i = 0
	}
	m.selected = i
}

func (m *Model) pick() tea.Cmd {
	c, ok := m.opts.Policy.ResolveIndex(m.candidates, m.input.Value(), m.selected)
	if !ok {
		return nil
	}
	m.Picked = &c
	if err := m.opts.Executor.Execute(c); err != nil {
		m.statusMsg = "execute failed: " + err.Error()
		return nil
	}
	return tea.Quit
}

func (m *Model) deleteSelected() tea.Cmd {
	c, ok := m.opts.Policy.ResolveIndex(m.candidates, m.input.Value(), m.selected)
	if !ok {
		return nil
	}
	if err := m.opts.Source.Delete(c); err != nil {
		m.statusMsg = "delete failed: " + err.Error()
		return nil
	}
	return m.fetch
}

// visibleRows returns how many list rows fit the terminal.
func (m *Model) visibleRows() int {
	// title + input + status + help line
	rows := m.height - 4
	if rows < 1 {
		rows = 10
	}
	return rows
}

// View renders the picker.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.opts.Title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	rows := m.visibleRows()
	start := 0
	if m.selected >= rows {
		start = m.selected - rows + 1
	}
	end := start + rows
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := start; i < end; i++ {
		c := m.filtered[i]
		line := c.Primary
		if c.Secondary != "" {
			line += "  " + secondStyle.Render(c.Secondary)
		}
		if i == m.selected {
			b.WriteString(selectedStyle.Render("▌ ") + line)
		} else {
			b.WriteString(normalStyle.Render("  ") + line)
		}
		b.WriteString("\n")
	}

	status := fmt.Sprintf("%d/%d", len(m.filtered), len(m.candidates))
	if m.statusMsg != "" {
		status += "  " + m.statusMsg
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return b.String()
}

// Run starts the picker and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
