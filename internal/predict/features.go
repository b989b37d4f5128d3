package predict

import (
	"github.com/abhisek/credaudit/internal/catalogue"
	"github.com/abhisek/credaudit/internal/eligibility"
)

// FeaturesFrom builds the model input for a snapshot. TotalCredits sums
// every non-subset category the program defines, regardless of the term
// window; the time-window rules judge when those credits were earned.
func FeaturesFrom(program catalogue.DegreeProgram, snap eligibility.Snapshot) Features {
	total := 0
	for _, c := range program.Categories {
		if !c.IsSubset() {
			total += snap.Earned[c.Name]
		}
	}
	return Features{
		PEP:                snap.Earned[catalogue.CategoryPEP],
		Humanities:         snap.Earned[catalogue.CategoryHumanities],
		SIP:                snap.Earned[catalogue.CategorySIP],
		ShortIIP:           snap.Earned[catalogue.CategoryShortIIP],
		LongIIP:            snap.Earned[catalogue.CategoryLongIIP],
		EffectiveExecution: snap.Earned[catalogue.CategoryExecution],
		TotalCredits:       total,
		YearOfStudy:        program.YearOfTerm(snap.CurrentTerm),
	}
}

// InputFor builds a Decide input for a snapshot.
func InputFor(program catalogue.DegreeProgram, snap eligibility.Snapshot) Input {
	return Input{
		DegreeYears:   program.TotalYears,
		RequiredTotal: program.TotalCredits,
		Features:      FeaturesFrom(program, snap),
	}
}
