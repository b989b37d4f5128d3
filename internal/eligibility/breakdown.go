package eligibility

import "github.com/abhisek/credaudit/internal/catalogue"

// GroupCredits is the credit total earned within one category group.
type GroupCredits struct {
	Group  catalogue.Group
	Earned int
}

// Breakdown summarizes earned credits by group and against the degree total.
type Breakdown struct {
	Groups    []GroupCredits
	Earned    int
	Remaining int
}

// Summarize groups the snapshot's earned credits regardless of term
// availability. Subset categories are skipped so their credits are only
// counted through the parent.
func Summarize(program catalogue.DegreeProgram, snap Snapshot, earnedTotal int) Breakdown {
	totals := make(map[catalogue.Group]int)
	for _, cat := range program.Categories {
		if cat.IsSubset() || cat.Group == "" {
			continue
		}
		totals[cat.Group] += snap.Earned[cat.Name]
	}

	b := Breakdown{
		Earned:    earnedTotal,
		Remaining: max(0, program.TotalCredits-earnedTotal),
	}
	for _, g := range catalogue.AllGroups() {
		b.Groups = append(b.Groups, GroupCredits{Group: g, Earned: totals[g]})
	}
	return b
}
