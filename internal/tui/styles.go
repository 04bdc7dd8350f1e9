package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.AdaptiveColor{Light: "#2E9E5B", Dark: "#34CB79"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "#6C6C80", Dark: "#9A9AB0"}
	warnColor   = lipgloss.AdaptiveColor{Light: "#B5400D", Dark: "#FF8A4C"}

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	warnStyle   = lipgloss.NewStyle().Foreground(warnColor)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)
	focusedPaneStyle = paneStyle.BorderForeground(accentColor)
)
