// Package ui provides the terminal watch mode using Bubble Tea. It
// re-renders the ephemeris report once a minute so the altitude and
// azimuth columns track the sky.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dbryant/ephemeris/internal/version"
)

// refreshInterval is how often the report is regenerated.
const refreshInterval = time.Minute

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// RenderFunc produces the report text for an observation instant.
type RenderFunc func(now time.Time) (string, error)

// Msg types for Bubble Tea
type (
	// TickMsg triggers a report refresh.
	TickMsg time.Time

	// reportMsg carries a freshly generated report.
	reportMsg struct {
		content string
		at      time.Time
		err     error
	}
)

// Model is the watch-mode Bubble Tea model.
type Model struct {
	render RenderFunc
	site   string

	width  int
	height int
	ready  bool

	content string
	lastAt  time.Time
	lastErr error
	scroll  int
}

// New creates a watch-mode model for a site.
func New(site string, render RenderFunc) Model {
	return Model{render: render, site: site}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.generate(time.Now()), tickCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.generate(time.Now())
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		case "g":
			m.scroll = 0
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case TickMsg:
		return m, tea.Batch(m.generate(time.Time(msg)), tickCmd())

	case reportMsg:
		m.content = msg.content
		m.lastAt = msg.at
		m.lastErr = msg.err
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("  ephemeris v%s — %s", version.Version, m.site)))
	b.WriteString("\n\n")

	switch {
	case m.lastErr != nil:
		b.WriteString(errorStyle.Render("ERROR: " + m.lastErr.Error()))
		b.WriteString("\n")
	case m.content == "":
		b.WriteString(dimStyle.Render("Computing..."))
		b.WriteString("\n")
	default:
		b.WriteString(m.visibleLines())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// visibleLines clamps the scroll offset and returns the window of the
// report that fits the terminal.
func (m Model) visibleLines() string {
	lines := strings.Split(strings.TrimRight(m.content, "\n"), "\n")
	// Title takes 2 lines, footer 2.
	avail := m.height - 4
	if avail < 1 {
		avail = 1
	}
	maxScroll := len(lines) - avail
	if maxScroll < 0 {
		maxScroll = 0
	}
	off := m.scroll
	if off > maxScroll {
		off = maxScroll
	}
	end := off + avail
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[off:end], "\n") + "\n"
}

func (m Model) renderFooter() string {
	status := "Computing..."
	if !m.lastAt.IsZero() {
		status = fmt.Sprintf("updated %s | refresh in %ds",
			m.lastAt.Format("15:04:05"),
			int(time.Until(m.lastAt.Add(refreshInterval)).Round(time.Second).Seconds()))
	}
	help := "↑↓: scroll | r: refresh | q: quit"
	return dimStyle.Render("  " + status + "  |  " + help)
}

func (m Model) generate(at time.Time) tea.Cmd {
	return func() tea.Msg {
		content, err := m.render(at)
		return reportMsg{content: content, at: at, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
