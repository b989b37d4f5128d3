package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/credaudit/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar drawn with block runes.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0..1
	ShowPercent bool
	Width       int
	Color       bool
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Color:       true,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += p.style(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}

	barWidth := max(p.Width-labelWidth-percentWidth, 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)
	empty := barWidth - filled

	result += p.style(theme.Secondary).Render(strings.Repeat("█", filled))
	result += p.style(theme.Border).Render(strings.Repeat("░", empty))

	if p.ShowPercent {
		pct := min(max(int(p.Percent*100), 0), 100)
		result += p.style(theme.TextDim).Render(fmt.Sprintf("  %d%%", pct))
	}

	return result
}

func (p ProgressBar) style(fg color.Color) lipgloss.Style {
	if !p.Color {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(fg)
}
