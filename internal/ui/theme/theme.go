// Package theme holds the terminal palette and shared styles for reports.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, readable on dark and light terminals.
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Info      = lipgloss.Color("#38BDF8") // Sky
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)
)

// Layout
var (
	Banner = lipgloss.NewStyle().
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// Plain strips colors from a style so output stays unadorned when color
// is disabled. Layout properties are kept.
func Plain(s lipgloss.Style) lipgloss.Style {
	return s.UnsetForeground().UnsetBackground().UnsetBorderForeground()
}
