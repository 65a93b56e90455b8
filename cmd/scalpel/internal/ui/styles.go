package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Style definitions
var (
	// Colors
	primaryColor = lipgloss.Color("#3b82f6")
	errorColor   = lipgloss.Color("#ef4444")
	warningColor = lipgloss.Color("#f59e0b")
	successColor = lipgloss.Color("#10b981")
	mutedColor   = lipgloss.Color("#94a3b8")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	kindStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	posStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	cleanStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// RenderIssueLine formats one issue for non-interactive output.
func RenderIssueLine(pos, kind, form string) string {
	return posStyle.Render(pos) + " " + kindStyle.Render(kind) + " " + form
}

// RenderError formats a fatal diagnostic.
func RenderError(msg string) string {
	return errorStyle.Render("✗ " + msg)
}

// RenderClean formats the no-findings message.
func RenderClean(msg string) string {
	return cleanStyle.Render("✓ " + msg)
}
