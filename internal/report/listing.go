package report

import (
	"fmt"
	"strings"

	"github.com/abhisek/credaudit/internal/catalogue"
	"github.com/abhisek/credaudit/internal/store"
	"github.com/abhisek/credaudit/internal/ui/theme"
)

const timeLayout = "2006-01-02 15:04"

// Programs lists catalogue programs.
func (r *Renderer) Programs(programs []catalogue.DegreeProgram) string {
	var b strings.Builder
	b.WriteString(r.style(theme.TableHeader).Render(
		cell("ID", 10, false) + " " + cell("Name", 28, false) + " " +
			cell("Credits", 8, true) + " " + cell("Years", 6, true) + " " + cell("Terms", 6, true) + "  Aliases"))
	b.WriteString("\n")
	for _, p := range programs {
		line := cell(p.ID, 10, false) + " " + cell(p.Name, 28, false) + " " +
			cell(fmt.Sprint(p.TotalCredits), 8, true) + " " +
			cell(fmt.Sprint(p.TotalYears), 6, true) + " " +
			cell(fmt.Sprint(p.TotalTerms()), 6, true) + "  " +
			strings.Join(p.Aliases, ", ")
		b.WriteString(r.fg(theme.Text).Render(strings.TrimRight(line, " ")))
		b.WriteString("\n")
	}
	return b.String()
}

// Program renders one program's categories and term expectations.
func (r *Renderer) Program(p catalogue.DegreeProgram) string {
	var b strings.Builder
	b.WriteString(r.style(theme.Title).Render(p.Name))
	b.WriteString(r.style(theme.Subtitle).Render(fmt.Sprintf("  %s, %d credits over %d terms", p.ID, p.TotalCredits, p.TotalTerms())))
	b.WriteString("\n\n")

	b.WriteString(r.style(theme.TableHeader).Render(
		cell("Category", 22, false) + " " + cell("Required", 9, true) + " " + cell("Window", 12, false) + " Group"))
	b.WriteString("\n")
	for _, c := range p.Categories {
		window := fmt.Sprintf("%d-", c.UnlockTerm)
		if c.LockAfterTerm != nil {
			window = fmt.Sprintf("%d-%d", c.UnlockTerm, *c.LockAfterTerm)
		}
		name := c.Name
		if c.IsSubset() {
			name = "  " + name
		}
		group := c.Group.DisplayName()
		if c.IsSubset() {
			group = "within " + c.SubsetOf
		}
		b.WriteString(r.fg(theme.Text).Render(
			cell(name, 22, false) + " " + cell(fmt.Sprint(c.Required), 9, true) + " " + cell(window, 12, false) + " " + group))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(r.fg(theme.TextDim).Render("Expected credits by term:"))
	b.WriteString("\n")
	values := p.Expectations().Values()
	for i, v := range values {
		fmt.Fprintf(&b, "%s", r.fg(theme.Text).Render(fmt.Sprintf("  T%-2d %4d", i+1, v)))
		if (i+1)%p.TermsPerYear == 0 || i == len(values)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Students lists stored students.
func (r *Renderer) Students(students []store.Student) string {
	if len(students) == 0 {
		return r.style(theme.Hint).Render("No students yet. Add one with `credaudit student add`.")
	}
	var b strings.Builder
	b.WriteString(r.style(theme.TableHeader).Render(
		cell("ID", 36, false) + " " + cell("Name", 20, false) + " " + cell("Program", 8, false) + " " + cell("Term", 4, true)))
	b.WriteString("\n")
	for _, s := range students {
		b.WriteString(r.fg(theme.Text).Render(
			cell(s.ID, 36, false) + " " + cell(s.Name, 20, false) + " " + cell(s.Program, 8, false) + " " + cell(fmt.Sprint(s.CurrentTerm), 4, true)))
		b.WriteString("\n")
	}
	return b.String()
}

// History lists evaluation records, newest first.
func (r *Renderer) History(records []store.EvaluationRecord) string {
	if len(records) == 0 {
		return r.style(theme.Hint).Render("No evaluations recorded.")
	}
	var b strings.Builder
	b.WriteString(r.style(theme.TableHeader).Render(
		cell("When", 16, false) + " " + cell("Term", 4, true) + " " + cell("Earned", 6, true) + " " +
			cell("Expected", 8, true) + " " + cell("Ratio", 5, true) + " " + cell("Status", 20, false) + " Risk"))
	b.WriteString("\n")
	for _, rec := range records {
		line := cell(rec.CreatedAt.Local().Format(timeLayout), 16, false) + " " +
			cell(fmt.Sprint(rec.Term), 4, true) + " " +
			cell(fmt.Sprint(rec.EarnedTotal), 6, true) + " " +
			cell(fmt.Sprint(rec.ExpectedByNow), 8, true) + " " +
			cell(fmt.Sprintf("%.2f", rec.Ratio), 5, true) + " " +
			cell(rec.Status, 20, false) + " " + rec.Risk
		b.WriteString(r.fg(theme.Text).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
