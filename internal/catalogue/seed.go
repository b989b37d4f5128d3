package catalogue

// coreShare is the fraction of a degree's total credits that must be core.
const coreShare = 0.57

// StandardCategories returns the term-based category set for a program of
// the given size. Windows are expressed in years so that programs of
// different length share one rule set: PEP in the first 1.5 years, SIP
// from year 2, Short IIP and RI from year 3, Long IIP in the final year.
func StandardCategories(totalCredits, totalYears, termsPerYear int) []CreditCategory {
	yearStart := func(year int) int {
		return (year-1)*termsPerYear + 1
	}
	pepLock := termsPerYear + termsPerYear/2

	return []CreditCategory{
		{Name: CategoryCore, Required: int(float64(totalCredits) * coreShare), UnlockTerm: 1, Group: GroupCore},
		{Name: CategoryPEP, Required: 12, UnlockTerm: 1, LockAfterTerm: LockAfter(pepLock), Group: GroupGeneralEd},
		{Name: CategoryGETotal, Required: 32, UnlockTerm: 1, Group: GroupGeneralEd},
		{Name: CategoryHumanities, Required: 8, UnlockTerm: 1, SubsetOf: CategoryGETotal, Group: GroupGeneralEd},
		{Name: CategoryExecution, Required: 3, UnlockTerm: 1, Group: GroupGeneralEd},
		{Name: CategorySIP, Required: 3, UnlockTerm: yearStart(2), Group: GroupExperiential},
		{Name: CategoryShortIIP, Required: 2, UnlockTerm: yearStart(3), Group: GroupExperiential},
		{Name: CategoryLongIIP, Required: 10, UnlockTerm: yearStart(totalYears), Group: GroupExperiential},
		{Name: CategoryRI, Required: 4, UnlockTerm: yearStart(3), Group: GroupExperiential},
	}
}

// DefaultPrograms returns the built-in degree programs.
func DefaultPrograms() []DegreeProgram {
	program := func(id, name string, credits, years int, aliases ...string) DegreeProgram {
		return DegreeProgram{
			ID:           id,
			Name:         name,
			TotalCredits: credits,
			TotalYears:   years,
			TermsPerYear: DefaultTermsPerYear,
			Aliases:      aliases,
			Categories:   StandardCategories(credits, years, DefaultTermsPerYear),
		}
	}

	return []DegreeProgram{
		program("btech", "B.Tech / TSM (4 Years)", 160, 4, "BTECH_AI", "TSM"),
		program("bba", "BBA (3 Years)", 120, 3),
		program("law", "Law (5 Years)", 200, 5, "BBA_LLB"),
	}
}

// Default returns the built-in catalogue.
func Default() *Catalogue {
	c, err := NewCatalogue(DefaultPrograms()...)
	if err != nil {
		panic("catalogue: default programs invalid: " + err.Error())
	}
	return c
}
