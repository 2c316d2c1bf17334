package tui

import "github.com/charmbracelet/lipgloss"

const clearScreen = "\033[H\033[2J"

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	danger    = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF5F6D"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)

	subtleStyle = lipgloss.NewStyle().Foreground(subtle)

	boxStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(danger).
			Padding(1, 2).
			Bold(true)

	errStyle = lipgloss.NewStyle().Foreground(danger)

	okStyle = lipgloss.NewStyle().Foreground(special)
)
