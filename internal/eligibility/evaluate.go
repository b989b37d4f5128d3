// Package eligibility evaluates a student's earned credits against the
// term-gated categories of a degree program.
package eligibility

import (
	"github.com/abhisek/credaudit/internal/catalogue"
	"github.com/abhisek/credaudit/internal/risk"
)

// Evaluate checks every category of the program at the snapshot's term.
// Categories are visited in catalogue order, which fixes the order of
// Categories and MissingCategories in the result.
func Evaluate(program catalogue.DegreeProgram, snap Snapshot) (*Result, error) {
	return EvaluateCategories(program, program.Categories, snap)
}

// EvaluateCategories is Evaluate over an explicit category set.
func EvaluateCategories(program catalogue.DegreeProgram, categories []catalogue.CreditCategory, snap Snapshot) (*Result, error) {
	totalTerms := program.TotalTerms()
	if snap.CurrentTerm < 1 || snap.CurrentTerm > totalTerms {
		return nil, &InvalidSnapshotError{Term: snap.CurrentTerm, TotalTerms: totalTerms}
	}

	res := &Result{
		Program:    program.ID,
		Term:       snap.CurrentTerm,
		Phase:      program.AcademicPhase(snap.CurrentTerm),
		TotalTerms: totalTerms,
		Categories: make([]CategoryEvaluation, 0, len(categories)),
	}

	for _, cat := range categories {
		ev := evaluateCategory(cat, snap)
		res.Categories = append(res.Categories, ev)

		if !ev.Available {
			res.FutureLockedTotal += cat.Required
			continue
		}
		if !cat.IsSubset() {
			res.EarnedTotal += ev.Earned
		}
		if *ev.Deficit > 0 {
			res.PendingTotal += *ev.Deficit
			res.MissingCategories = append(res.MissingCategories, cat.Name)
		}
	}

	res.ExpectedByNow, _ = program.Expectations().Expected(snap.CurrentTerm)
	res.PerformanceRatio = risk.Ratio(res.EarnedTotal, res.ExpectedByNow)
	res.AcademicStatus, res.RiskLevel = risk.ClassifyRatio(res.PerformanceRatio)
	return res, nil
}

func evaluateCategory(cat catalogue.CreditCategory, snap Snapshot) CategoryEvaluation {
	ev := CategoryEvaluation{
		Name:      cat.Name,
		Required:  cat.Required,
		Earned:    snap.Earned[cat.Name],
		Available: cat.AvailableAt(snap.CurrentTerm),
		Subset:    cat.IsSubset(),
	}
	if !ev.Available {
		ev.Status = StatusNotAvailable
		return ev
	}

	deficit := max(0, cat.Required-ev.Earned)
	progress := progressPercent(ev.Earned, cat.Required)
	ev.Deficit = &deficit
	ev.Progress = &progress

	if ev.Earned >= cat.Required {
		ev.Status = StatusCompleted
	} else {
		ev.Status = StatusPending
	}
	return ev
}

// progressPercent returns floor(100*earned/required) clamped to 0..100.
// A zero requirement is always complete.
func progressPercent(earned, required int) int {
	if required <= 0 {
		return 100
	}
	return min(100, max(0, 100*earned/required))
}
