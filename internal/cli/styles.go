package cli

import "github.com/charmbracelet/lipgloss"

var (
	green = lipgloss.Color("#a6e3a1")
	peach = lipgloss.Color("#fab387")
	red   = lipgloss.Color("#f38ba8")
	muted = lipgloss.Color("#a6adc8")
	blue  = lipgloss.Color("#74c7ec")

	successStyle = lipgloss.NewStyle().Foreground(green).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(peach)
	errorStyle   = lipgloss.NewStyle().Foreground(red).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	valueStyle   = lipgloss.NewStyle().Foreground(blue).Bold(true)
)
