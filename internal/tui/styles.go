package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("221"))

	workStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("204"))

	breakStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("114"))

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	announceStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("117"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)
