// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typetest/internal/typing"
)

const refreshInterval = time.Second

type tickMsg time.Time

// Model implements the Bubble Tea typing UI.
type Model struct {
	proc    *typing.Processor
	session *typing.Session
	logger  *slog.Logger

	keys           KeyMap
	idleRestart    string
	hasIdleRestart bool
	help           help.Model

	width  int
	height int

	errMsg    string
	last      typing.Stats
	hasLast   bool
	completed int
}

var (
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	doneStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FB77E")).Bold(true)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// NewModel constructs a typing TUI model around the first session.
func NewModel(proc *typing.Processor, session *typing.Session, idleRestart string, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	return &Model{
		proc:           proc,
		session:        session,
		logger:         logger,
		keys:           DefaultKeyMap(idleRestart),
		idleRestart:    idleRestart,
		hasIdleRestart: idleRestart != "",
		help:           help.New(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		if m.session.Phase() == typing.PhaseActive {
			m.session.Refresh()
		}
		return m, tick()
	case tea.KeyMsg:
		for _, ev := range m.keys.Events(msg) {
			if done, cmd := m.apply(ev); done {
				return m, cmd
			}
		}
		return m, nil
	default:
		return m, nil
	}
}

// apply processes one event; done reports that the remaining events of the
// same key message must be dropped.
func (m *Model) apply(ev typing.Event) (bool, tea.Cmd) {
	res, err := m.proc.Process(m.session, ev)
	if err != nil {
		m.errMsg = err.Error()
		m.logger.Error("failed to process key", "event", ev.Kind.String(), "err", err)
		return true, nil
	}
	switch {
	case res.Quit:
		m.logger.Debug("quit requested", "phase", m.session.Phase().String())
		return true, tea.Quit
	case res.Restarted:
		m.logger.Debug("test restarted",
			"from_phase", m.session.Phase().String(),
			"chars", len([]rune(res.Session.Target())),
		)
		m.session = res.Session
		m.errMsg = ""
		return true, nil
	case res.Mutated && m.session.Phase() == typing.PhaseCompleted:
		st := m.session.Stats()
		m.last = st
		m.hasLast = true
		m.completed++
		m.logger.Info("test completed",
			"wpm", st.WPM,
			"accuracy", st.Accuracy,
			"correct", st.Correct,
			"typed", st.Typed,
			"elapsed", st.Elapsed,
		)
	}
	return false, nil
}

// Session returns the current session.
func (m *Model) Session() *typing.Session {
	return m.session
}

// LastResult returns the stats of the most recently completed test.
func (m *Model) LastResult() (typing.Stats, bool) {
	return m.last, m.hasLast
}

// Completed returns the number of tests completed in this run.
func (m *Model) Completed() int {
	return m.completed
}

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.session.Snapshot()
	if len(snap.Target) == 0 {
		return ""
	}
	styledRunes := buildStyledRunes(snap)
	text := renderStyledRunes(styledRunes)
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth >= 1 {
		text = lipgloss.NewStyle().Width(contentWidth).Render(wrapStyledRunes(styledRunes, contentWidth))
	}
	sections := []string{
		titleStyle.Render("> type"),
		"",
		text,
		"",
		m.renderStats(snap),
	}
	if status := m.renderStatus(snap); status != "" {
		sections = append(sections, "", status)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	footer := m.renderFooter(snap)
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderStats(snap typing.Snapshot) string {
	st := snap.Stats
	segments := []string{
		fmt.Sprintf("Progress %d/%d", len(snap.Typed), len(snap.Target)),
		fmt.Sprintf("WPM %d", st.WPM),
		fmt.Sprintf("Accuracy %.1f%%", st.Accuracy),
	}
	if m.hasLast && snap.Phase != typing.PhaseCompleted {
		segments = append(segments, fmt.Sprintf("Last %d WPM · %.1f%%", m.last.WPM, m.last.Accuracy))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderStatus(snap typing.Snapshot) string {
	switch {
	case m.errMsg != "":
		return errorStyle.Render(m.errMsg)
	case snap.Phase == typing.PhaseCompleted:
		return doneStyle.Render(fmt.Sprintf("Test completed in %s! Press %s to restart or esc to quit.",
			snap.Stats.Elapsed.Round(100*time.Millisecond), m.restartHint()))
	default:
		return ""
	}
}

func (m *Model) restartHint() string {
	if !m.hasIdleRestart {
		return "enter"
	}
	return string([]rune(m.idleRestart)[0]) + " or enter"
}

func (m *Model) renderFooter(snap typing.Snapshot) string {
	m.keys.IdleRestart.SetEnabled(m.hasIdleRestart && snap.Phase != typing.PhaseActive)
	return m.help.View(m.keys)
}
