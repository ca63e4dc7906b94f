// ABOUTME: Terminal UI showing live playlist import progress
// ABOUTME: Renders a progress bar with track counts and supports cancelling mid-import

// Package tui renders playlist import progress in the terminal and
// lets the user cancel a long import, keeping the tracks resolved so
// far as a partial playlist.
package tui

import (
	"fmt"
	"path/filepath"
	"sync/atomic"

	"playlist-importer/playlist"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options configures a visual import run.
type Options struct {
	// PlaylistPath is the playlist file to import.
	PlaylistPath string

	// Name overrides the playlist name derived from the file name.
	Name string

	// Importer drives the import. Its Step field is wrapped to feed
	// the progress display; any existing Step still runs.
	Importer *playlist.Importer
}

// stepMsg reports one processed playlist entry.
type stepMsg struct {
	done  int
	total int
}

// doneMsg carries the finished (possibly partial) playlist.
type doneMsg struct {
	playlist *playlist.Playlist
	err      error
}

// Key bindings
type keyMap struct {
	Cancel key.Binding
}

var keys = keyMap{
	Cancel: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "cancel import"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	countStyle = lipgloss.NewStyle().
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// model holds the import progress state.
type model struct {
	path       string
	bar        progress.Model
	spin       spinner.Model
	done       int
	total      int
	cancelled  *atomic.Bool
	cancelling bool
	playlist   *playlist.Playlist
	err        error
	steps      <-chan stepMsg
	result     <-chan doneMsg
	width      int
}

// Run imports a playlist while rendering progress and returns the
// resulting playlist, partial when the user cancelled.
func Run(opts Options) (*playlist.Playlist, error) {
	var cancelled atomic.Bool

	steps := make(chan stepMsg, 16)
	result := make(chan doneMsg, 1)

	// Copy the importer so the progress hook stays local to this run
	im := *opts.Importer
	prev := im.Step
	im.Step = func(done, total int) bool {
		select {
		case steps <- stepMsg{done: done, total: total}:
		default:
			// Don't block the import on a slow terminal
		}

		if prev != nil && prev(done, total) {
			return true
		}

		return cancelled.Load()
	}

	go func() {
		pl, err := im.ImportFile(opts.PlaylistPath)
		if pl != nil && opts.Name != "" {
			pl.Name = opts.Name
		}

		result <- doneMsg{playlist: pl, err: err}
	}()

	m := model{
		path:      opts.PlaylistPath,
		bar:       progress.New(progress.WithDefaultGradient()),
		spin:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		cancelled: &cancelled,
		steps:     steps,
		result:    result,
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run progress UI: %w", err)
	}

	fm, ok := final.(model)
	if !ok {
		return nil, fmt.Errorf("unexpected final model type %T", final)
	}

	return fm.playlist, fm.err
}

// Init starts the spinner and the channel listeners.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, waitForStep(m.steps), waitForResult(m.result))
}

// waitForStep returns a command that delivers the next progress tick.
func waitForStep(steps <-chan stepMsg) tea.Cmd {
	return func() tea.Msg {
		return <-steps
	}
}

// waitForResult returns a command that delivers the import result.
func waitForResult(result <-chan doneMsg) tea.Cmd {
	return func() tea.Msg {
		return <-result
	}
}

// Update handles progress ticks, the final result, and cancellation.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		m.done = msg.done
		m.total = msg.total

		var cmd tea.Cmd
		if m.total > 0 {
			cmd = m.bar.SetPercent(float64(m.done) / float64(m.total))
		}

		return m, tea.Batch(cmd, waitForStep(m.steps))

	case doneMsg:
		m.playlist = msg.playlist
		m.err = msg.err

		return m, tea.Quit

	case tea.KeyMsg:
		if key.Matches(msg, keys.Cancel) {
			// Cooperative: the import stops at its next entry and
			// delivers the partial playlist via doneMsg
			m.cancelled.Store(true)
			m.cancelling = true
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = msg.Width - 8
		if m.bar.Width > 60 {
			m.bar.Width = 60
		}

		return m, nil

	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		m.bar = pm.(progress.Model)

		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)

		return m, cmd
	}

	return m, nil
}

// View renders the progress window.
func (m model) View() string {
	title := titleStyle.Render(fmt.Sprintf("Importing %s", filepath.Base(m.path)))

	status := fmt.Sprintf("%s %s songs added",
		m.spin.View(),
		countStyle.Render(fmt.Sprintf("%d/%d", m.done, m.total)))

	if m.cancelling {
		status = "Cancelling, keeping tracks imported so far..."
	}

	help := helpStyle.Render("q: cancel and keep partial playlist")

	return fmt.Sprintf("\n  %s\n\n  %s\n\n  %s\n\n  %s\n", title, m.bar.View(), status, help)
}
