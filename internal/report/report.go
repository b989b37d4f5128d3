// Package report renders evaluations, verdicts and listings for the terminal.
package report

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/credaudit/internal/eligibility"
	"github.com/abhisek/credaudit/internal/risk"
	"github.com/abhisek/credaudit/internal/tracker"
	"github.com/abhisek/credaudit/internal/ui/components"
	"github.com/abhisek/credaudit/internal/ui/theme"
)

// notApplicable fills cells that have no value for a locked category.
const notApplicable = "-"

// Renderer turns evaluation results into terminal text.
type Renderer struct {
	Width int
	Color bool
}

// New creates a Renderer of the default width.
func New(color bool) *Renderer {
	return &Renderer{Width: 72, Color: color}
}

func (r *Renderer) style(s lipgloss.Style) lipgloss.Style {
	if r.Color {
		return s
	}
	return theme.Plain(s)
}

func (r *Renderer) fg(c color.Color) lipgloss.Style {
	return r.style(lipgloss.NewStyle().Foreground(c))
}

func toneColor(t risk.Tone) color.Color {
	switch t {
	case risk.ToneSuccess:
		return theme.Success
	case risk.ToneInfo:
		return theme.Info
	case risk.ToneWarning:
		return theme.Warning
	case risk.ToneError:
		return theme.Error
	default:
		return theme.Text
	}
}

func statusColor(s eligibility.Status) color.Color {
	switch s {
	case eligibility.StatusCompleted:
		return theme.Success
	case eligibility.StatusPending:
		return theme.Warning
	default:
		return theme.TextDim
	}
}

// Evaluation renders a full evaluation report.
func (r *Renderer) Evaluation(rep *tracker.Report) string {
	res := rep.Result
	var b strings.Builder

	if rep.Student != nil {
		b.WriteString(r.style(theme.Title).Render(rep.Student.Name))
		b.WriteString(r.style(theme.Subtitle).Render("  " + rep.Student.ID))
		b.WriteString("\n")
	}

	banner := fmt.Sprintf("%s  |  %s", res.AcademicStatus, res.RiskLevel.DisplayName())
	bannerStyle := r.style(theme.Banner.
		Foreground(toneColor(res.AcademicStatus.Tone())).
		BorderForeground(toneColor(res.AcademicStatus.Tone())))
	b.WriteString(bannerStyle.Render(banner))
	b.WriteString("\n\n")

	b.WriteString(r.metrics(rep))
	b.WriteString("\n")
	b.WriteString(r.categoryTable(res.Categories))
	b.WriteString("\n")
	b.WriteString(r.missing(res.MissingCategories))
	b.WriteString("\n\n")
	b.WriteString(r.breakdown(rep))

	return b.String()
}

func (r *Renderer) metrics(rep *tracker.Report) string {
	res := rep.Result
	p := rep.Program
	label := r.fg(theme.TextDim)
	value := r.fg(theme.Text)

	rows := [][2]string{
		{"Program", fmt.Sprintf("%s (%s)", p.Name, p.ID)},
		{"Term", fmt.Sprintf("%d of %d, year %d, %s", res.Term, res.TotalTerms, p.YearOfTerm(res.Term), res.Phase)},
		{"Earned", fmt.Sprintf("%d credits", res.EarnedTotal)},
		{"Expected by now", fmt.Sprintf("%d credits", res.ExpectedByNow)},
		{"Performance", fmt.Sprintf("%.2f", res.PerformanceRatio)},
		{"Pending now", fmt.Sprintf("%d credits", res.PendingTotal)},
		{"Unlocks later", fmt.Sprintf("%d credits", res.FutureLockedTotal)},
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(label.Render(pad(row[0]+":", 17)))
		b.WriteString(value.Render(row[1]))
		b.WriteString("\n")
	}
	return b.String()
}

var tableColumns = []struct {
	title string
	width int
	right bool
}{
	{"Category", 26, false},
	{"Required", 9, true},
	{"Earned", 7, true},
	{"Remaining", 10, true},
	{"Progress", 9, true},
	{"Status", 14, false},
}

func (r *Renderer) categoryTable(cats []eligibility.CategoryEvaluation) string {
	var b strings.Builder

	header := make([]string, len(tableColumns))
	for i, col := range tableColumns {
		header[i] = cell(col.title, col.width, col.right)
	}
	b.WriteString(r.style(theme.TableHeader).Render(strings.Join(header, " ")))
	b.WriteString("\n")

	for _, c := range cats {
		name := c.Name
		if c.Subset {
			name = "  " + name
		}
		remaining, progress := notApplicable, notApplicable
		if c.Deficit != nil {
			remaining = fmt.Sprintf("%d", *c.Deficit)
		}
		if c.Progress != nil {
			progress = fmt.Sprintf("%d%%", *c.Progress)
		}

		values := []string{name, fmt.Sprintf("%d", c.Required), fmt.Sprintf("%d", c.Earned), remaining, progress}
		cells := make([]string, 0, len(tableColumns))
		for i, v := range values {
			col := tableColumns[i]
			cells = append(cells, cell(v, col.width, col.right))
		}
		line := r.fg(theme.Text).Render(strings.Join(cells, " "))
		status := r.fg(statusColor(c.Status)).Render(string(c.Status))
		b.WriteString(line + " " + status + "\n")
	}
	return b.String()
}

func (r *Renderer) missing(names []string) string {
	if len(names) == 0 {
		return r.fg(theme.Success).Render("All available requirements are met.")
	}
	return r.fg(theme.Warning).Render("Missing requirements: ") +
		r.fg(theme.Text).Render(strings.Join(names, ", "))
}

func (r *Renderer) breakdown(rep *tracker.Report) string {
	bd := rep.Breakdown
	var b strings.Builder

	parts := make([]string, 0, len(bd.Groups))
	for _, g := range bd.Groups {
		parts = append(parts, fmt.Sprintf("%s %d", g.Group.DisplayName(), g.Earned))
	}
	b.WriteString(r.fg(theme.TextDim).Render("By group: "))
	b.WriteString(r.fg(theme.Text).Render(strings.Join(parts, ", ")))
	b.WriteString("\n")

	total := rep.Program.TotalCredits
	var pct float64
	if total > 0 {
		pct = float64(bd.Earned) / float64(total)
	}
	bar := components.ProgressBar{
		Label:       fmt.Sprintf("%d / %d credits", bd.Earned, total),
		Percent:     pct,
		ShowPercent: true,
		Width:       r.Width,
		Color:       r.Color,
	}
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(r.fg(theme.TextDim).Render(fmt.Sprintf("%d credits remaining to degree", bd.Remaining)))
	return b.String()
}

// cell pads s to width, truncating when it does not fit.
func cell(s string, width int, right bool) string {
	if lipgloss.Width(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	if right {
		return strings.Repeat(" ", width-lipgloss.Width(s)) + s
	}
	return pad(s, width)
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
