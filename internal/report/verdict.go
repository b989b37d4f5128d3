package report

import (
	"fmt"
	"strings"

	"github.com/abhisek/credaudit/internal/predict"
	"github.com/abhisek/credaudit/internal/ui/theme"
)

// Verdict renders a prediction outcome.
func (r *Renderer) Verdict(v predict.Verdict) string {
	var b strings.Builder

	b.WriteString(r.fg(theme.TextDim).Render("Prediction: "))
	switch v.Outcome {
	case predict.OutcomeEligible:
		b.WriteString(r.fg(theme.Success).Bold(true).Render(string(v.Outcome)))
	case predict.OutcomeNotEligible:
		b.WriteString(r.fg(theme.Error).Bold(true).Render(string(v.Outcome)))
	default:
		b.WriteString(r.fg(theme.Warning).Bold(true).Render(string(v.Outcome)))
	}

	switch {
	case v.TimeRestricted:
		b.WriteString(r.fg(theme.TextDim).Render(" (time restricted)"))
		b.WriteString("\n")
		b.WriteString(r.Violations(v.Violations))
		return b.String()
	case v.Err != nil:
		b.WriteString("\n")
		b.WriteString(r.fg(theme.Error).Render("  " + v.Err.Error()))
		return b.String()
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s%s\n",
		r.fg(theme.TextDim).Render("Risk:       "),
		r.fg(toneColor(v.Risk.Tone())).Render(v.Risk.DisplayName()))
	b.WriteString(r.fg(theme.TextDim).Render("Model:      " + v.Predictor))
	return b.String()
}

// Violations renders time-window violations, one per line.
func (r *Renderer) Violations(violations []string) string {
	if len(violations) == 0 {
		return r.fg(theme.Success).Render("No time-window violations.")
	}
	lines := make([]string, len(violations))
	for i, v := range violations {
		lines[i] = r.fg(theme.Error).Render("  ✗ " + v)
	}
	return strings.Join(lines, "\n")
}
