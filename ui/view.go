package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"metronome-cli/metronome"
)

const panelWidth = 46 // usable inner width (52 frame - 2 border - 4 padding)

// lampHold is how long the beat lamp stays lit after a beat fires.
const lampHold = 120 * time.Millisecond

// View renders the metronome panel, centered in the terminal.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderTitle(),
		"",
		m.renderTempo(),
		m.renderTempoBar(),
		"",
		m.renderStatus(),
		m.renderToggles(),
		m.renderTimer(),
		"",
		m.renderHelp(),
	}

	panel := frameStyle.Render(strings.Join(sections, "\n"))
	if m.width > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
	}
	return panel
}

func (m Model) renderTitle() string {
	return titleStyle.Render("M E T R O N O M E")
}

// renderTempo shows the BPM readout with the subdivision on the right.
func (m Model) renderTempo() string {
	left := labelStyle.Render("TEMPO ") + tempoStyle.Render(fmt.Sprintf("%3d BPM", m.snap.Tempo))
	right := dimStyle.Render(subGlyph(m.snap.Subdivision) + " " + m.snap.Subdivision.String())

	gap := panelWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderTempoBar marks the tempo's position on the 40-200 BPM range.
func (m Model) renderTempoBar() string {
	frac := float64(m.snap.Tempo-metronome.MinTempo) / float64(metronome.MaxTempo-metronome.MinTempo)
	frac = max(0, min(1, frac))

	filled := int(frac * float64(panelWidth-1))
	return barFillStyle.Render(strings.Repeat("━", filled)) +
		barFillStyle.Render("●") +
		dimStyle.Render(strings.Repeat("━", max(0, panelWidth-filled-1)))
}

// renderStatus shows the playback state with the beat lamp on the right.
func (m Model) renderStatus() string {
	var status string
	if m.snap.State == metronome.Playing {
		status = statusStyle.Render(" Playing")
	} else {
		status = dimStyle.Render(" Stopped")
	}

	lamp := dimStyle.Render("○")
	if m.snap.State == metronome.Playing && time.Since(m.snap.LastBeat) < lampHold {
		style := lampClickStyle
		if m.snap.LastKind == metronome.Quack {
			style = lampQuackStyle
		}
		lamp = style.Render("●")
	}

	gap := panelWidth - lipgloss.Width(status) - lipgloss.Width(lamp)
	if gap < 1 {
		gap = 1
	}
	return status + strings.Repeat(" ", gap) + lamp
}

func (m Model) renderToggles() string {
	quack := dimStyle.Render("[Quack]")
	if m.snap.QuackMode {
		quack = activeToggle.Render("[Quack]")
	}

	timer := dimStyle.Render("[Timer]")
	if m.snap.TimerEnabled {
		timer = activeToggle.Render("[Timer]")
	}

	return labelStyle.Render("MODE  ") + quack + " " + timer
}

// renderTimer shows the practice countdown, flagging when time is up.
func (m Model) renderTimer() string {
	label := labelStyle.Render("TIME  ")
	if !m.snap.TimerEnabled {
		return label + dimStyle.Render(m.snap.Countdown.String())
	}
	if m.snap.Countdown.IsZero() {
		return label + timeUpStyle.Render(m.snap.Countdown.String()+"  time!")
	}
	return label + countdownStyle.Render(m.snap.Countdown.String())
}

func (m Model) renderHelp() string {
	return helpStyle.Render("[Spc]Play/Stop [↑↓]±1 BPM [←→]±5 BPM [S]Subdiv") + "\n" +
		helpStyle.Render("[D]Quack [T]Timer [R]Reset [Q]Quit")
}

func subGlyph(s metronome.Subdivision) string {
	if s == metronome.Eighth {
		return "♫"
	}
	return "♩"
}
