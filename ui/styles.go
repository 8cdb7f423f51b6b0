package ui

import "github.com/charmbracelet/lipgloss"

// Color palette using standard ANSI terminal colors (0-15).
// These adapt to the user's terminal theme for consistent appearance.
var (
	colorBorder = lipgloss.ANSIColor(8)  // bright black (dark gray)
	colorTitle  = lipgloss.ANSIColor(10) // bright green
	colorText   = lipgloss.ANSIColor(7)  // white (light gray)
	colorDim    = lipgloss.ANSIColor(8)  // bright black (dark gray)
	colorAccent = lipgloss.ANSIColor(11) // bright yellow
	colorActive = lipgloss.ANSIColor(10) // bright green
	colorTempo  = lipgloss.ANSIColor(2)  // green
	colorQuack  = lipgloss.ANSIColor(9)  // bright red
)

// Lip Gloss styles
var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2).
			Width(52)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorTitle).
			Bold(true)

	tempoStyle = lipgloss.NewStyle().
			Foreground(colorTempo).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorActive).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	activeToggle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	barFillStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	lampClickStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	lampQuackStyle = lipgloss.NewStyle().
			Foreground(colorQuack).
			Bold(true)

	countdownStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	timeUpStyle = lipgloss.NewStyle().
			Foreground(colorQuack).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)
