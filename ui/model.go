// Package ui implements the Bubbletea TUI for the metronome.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"metronome-cli/metronome"
)

type tickMsg time.Time

// Model is the Bubbletea model for the metronome panel.
type Model struct {
	eng      *metronome.Metronome
	snap     metronome.Snapshot
	initial  metronome.Countdown // value the practice timer resets to
	quitting bool
	width    int
	height   int
}

// NewModel creates a Model wired to the engine.
func NewModel(eng *metronome.Metronome, timer metronome.Countdown) Model {
	return Model{eng: eng, snap: eng.Snapshot(), initial: timer}
}

// Init starts the refresh timer and requests the terminal size.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.WindowSize())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*50, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles key presses, refresh ticks, and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
		if m.quitting {
			return m, tea.Quit
		}
		m.snap = m.eng.Snapshot()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.snap = m.eng.Snapshot()
		return m, tickCmd()
	}

	return m, nil
}

// handleKey maps key presses onto engine operations.
func (m *Model) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true

	case " ":
		m.eng.Toggle()

	case "up", "k":
		m.eng.IncrementTempo()

	case "down", "j":
		m.eng.DecrementTempo()

	case "right", "l":
		m.eng.AdjustTempo(5)

	case "left", "h":
		m.eng.AdjustTempo(-5)

	case "s":
		if m.snap.Subdivision == metronome.Quarter {
			m.eng.SetSubdivision(metronome.Eighth)
		} else {
			m.eng.SetSubdivision(metronome.Quarter)
		}

	case "d":
		m.eng.SetQuackMode(!m.snap.QuackMode)

	case "t":
		m.eng.SetTimerEnabled(!m.snap.TimerEnabled)

	case "r":
		m.eng.SetCountdown(m.initial)
	}
}
