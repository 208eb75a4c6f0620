// Package tui provides a Bubble Tea terminal user interface for episode-combiner.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/episode-combiner/internal/combine"
	"github.com/handiism/episode-combiner/internal/config"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	episodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

const maxLogs = 10

var errCancelled = errors.New("cancelled by user")

// State represents the current UI state.
type State int

const (
	StateReady State = iota
	StateCombining
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   combine.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	spinner  spinner.Model
	progress progress.Model
	settings *config.Settings
	logger   *slog.Logger
	logs     []LogEntry
	report   *combine.Report
	err      error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc
	events chan combine.ProgressEvent

	manager *combine.Manager

	// Run progress
	current       string
	doneEpisodes  int32
	totalEpisodes int32

	// Options
	findHook bool
	playlist bool
	verbose  bool

	width  int
	height int
}

// NewModel creates a new TUI model for the given settings.
func NewModel(settings *config.Settings, logger *slog.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:    StateReady,
		spinner:  sp,
		progress: prog,
		settings: settings,
		logger:   logger,
		logs:     make([]LogEntry, 0),
		ctx:      ctx,
		cancel:   cancel,
		playlist: settings.CreatePlaylist,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Message types
type (
	// ProgressMsg is sent for every event the manager emits.
	ProgressMsg struct {
		Event combine.ProgressEvent
	}

	// eventsClosedMsg is sent once the event channel is drained.
	eventsClosedMsg struct{}

	// CombineDoneMsg is sent when the run returns.
	CombineDoneMsg struct {
		Report *combine.Report
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateReady {
				return m, tea.Quit
			}
			if m.state == StateCombining {
				m.cancel()
			}

		case "enter":
			if m.state == StateReady {
				m.state = StateCombining
				m.events = make(chan combine.ProgressEvent, 64)
				m.manager = m.newManager()
				return m, tea.Batch(m.startCombine(), waitForEvent(m.events), m.tickProgress(), m.spinner.Tick)
			}

		case "h":
			if m.state == StateReady {
				m.findHook = !m.findHook
			}

		case "p":
			if m.state == StateReady {
				m.playlist = !m.playlist
			}

		case "v":
			if m.state == StateReady {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.state = StateReady
				m.logs = nil
				m.report = nil
				m.err = nil
				m.current = ""
				m.doneEpisodes = 0
				m.totalEpisodes = 0
				m.manager = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, waitForEvent(m.events))
		m.applyEvent(msg.Event)

	case eventsClosedMsg:

	case CombineDoneMsg:
		m.report = msg.Report
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}
		if m.manager != nil {
			m.doneEpisodes, m.totalEpisodes = m.manager.GetProgress()
		}

	case TickMsg:
		if m.manager != nil && m.state == StateCombining {
			m.doneEpisodes, m.totalEpisodes = m.manager.GetProgress()

			var percent float64
			if m.totalEpisodes > 0 {
				percent = float64(m.doneEpisodes) / float64(m.totalEpisodes)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) applyEvent(event combine.ProgressEvent) {
	if event.Level == combine.LevelProgress {
		m.current = event.Label
		return
	}
	// Filter verbose messages if not in verbose mode
	if event.Level == combine.LevelVerbose && !m.verbose {
		return
	}
	m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("Episode Combiner"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Combine, tag and publish show episodes"))
	b.WriteString("\n\n")

	switch m.state {
	case StateReady:
		b.WriteString(m.viewReady())
	case StateCombining:
		b.WriteString(m.viewCombining())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewReady() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Show: %s", m.settings.ShowName)))
	b.WriteString("\n\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("  Source:      %s", m.settings.SourceDir)))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("  Destination: %s", m.settings.DestinationDir)))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("  Files:       *.%s, key length %d", m.settings.FileFormat, m.settings.EpisodeIndex)))
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Find hook, first episode only (h)\n", checkbox(m.findHook)))
	b.WriteString(fmt.Sprintf("  %s Create playlist (p)\n", checkbox(m.playlist)))
	b.WriteString(fmt.Sprintf("  %s Verbose output (v)\n", checkbox(m.verbose)))

	return b.String()
}

func (m Model) viewCombining() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	if m.current != "" {
		b.WriteString(episodeStyle.Render(m.current))
	} else {
		b.WriteString(subtitleStyle.Render("Scanning episodes..."))
	}
	b.WriteString("\n\n")

	var percent float64
	if m.totalEpisodes > 0 {
		percent = float64(m.doneEpisodes) / float64(m.totalEpisodes)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Episodes: %d/%d", m.doneEpisodes, m.totalEpisodes)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	if m.report == nil {
		return successStyle.Render("Nothing to do.")
	}

	summary := fmt.Sprintf(
		"Combine complete\n\n"+
			"Show: %s\n"+
			"Published: %d\n"+
			"Failed: %d\n"+
			"Saved to: %s",
		m.report.Show,
		len(m.report.Published),
		len(m.report.Failed),
		m.report.Destination,
	)
	if m.report.Playlist != "" {
		summary += fmt.Sprintf("\nPlaylist: %s", m.report.Playlist)
	}
	b.WriteString(boxStyle.Render(summary))
	b.WriteString("\n")

	for _, failed := range m.report.Failed {
		b.WriteString(errorStyle.Render(fmt.Sprintf("  x %s", failed.Error())))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n")
	}
	if m.report != nil {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("Published before stopping: %s", strings.Join(m.report.SucceededKeys(), ", "))))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case combine.LevelError:
			style = errorStyle
			prefix = "✗"
		case combine.LevelWarning:
			style = warningStyle
			prefix = "!"
		case combine.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case combine.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateReady:
		return "enter: start • h: find hook • p: playlist • v: verbose • esc: quit"
	case StateCombining:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: run again • q: quit"
	}
	return ""
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m *Model) newManager() *combine.Manager {
	settings := *m.settings
	settings.CreatePlaylist = m.playlist

	events := m.events
	return combine.NewManager(&settings, m.logger, nil, nil, func(event combine.ProgressEvent) {
		events <- event
	})
}

// startCombine runs the manager in the background and closes the event
// channel when it returns.
func (m *Model) startCombine() tea.Cmd {
	manager, ctx, events := m.manager, m.ctx, m.events
	opts := combine.RunOptions{FindHook: m.findHook}
	return func() tea.Msg {
		report, err := manager.Run(ctx, opts)
		close(events)
		return CombineDoneMsg{Report: report, Err: err}
	}
}

func waitForEvent(events <-chan combine.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return ProgressMsg{Event: event}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings, logger *slog.Logger) error {
	p := tea.NewProgram(NewModel(settings, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
