package catalogue

import "fmt"

// validatePrograms performs all structural checks on the given programs.
// Returns a *ConfigurationError describing all problems found, or nil.
func validatePrograms(programs []DegreeProgram) error {
	var errs []string

	if len(programs) == 0 {
		errs = append(errs, "catalogue has no degree programs")
	}

	ids := make(map[string]bool, len(programs))
	for _, p := range programs {
		for _, id := range append([]string{p.ID}, p.Aliases...) {
			key := normalizeID(id)
			if key == "" {
				errs = append(errs, fmt.Sprintf("program %q has an empty ID or alias", p.Name))
				continue
			}
			if ids[key] {
				errs = append(errs, fmt.Sprintf("duplicate program ID: %q", id))
			}
			ids[key] = true
		}
		errs = append(errs, validateProgram(p)...)
	}

	if len(errs) > 0 {
		return &ConfigurationError{Problems: errs}
	}
	return nil
}

func validateProgram(p DegreeProgram) []string {
	var errs []string
	prefix := fmt.Sprintf("program %q", p.ID)

	if p.TotalCredits <= 0 {
		errs = append(errs, fmt.Sprintf("%s: TotalCredits must be > 0, got %d", prefix, p.TotalCredits))
	}
	if p.TotalYears <= 0 {
		errs = append(errs, fmt.Sprintf("%s: TotalYears must be > 0, got %d", prefix, p.TotalYears))
	}
	if p.TermsPerYear <= 0 {
		errs = append(errs, fmt.Sprintf("%s: TermsPerYear must be > 0, got %d", prefix, p.TermsPerYear))
	}
	totalTerms := p.TotalTerms()

	byName := make(map[string]CreditCategory, len(p.Categories))
	for _, c := range p.Categories {
		if c.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: category with empty name", prefix))
			continue
		}
		if _, dup := byName[c.Name]; dup {
			errs = append(errs, fmt.Sprintf("%s: duplicate category: %q", prefix, c.Name))
		}
		byName[c.Name] = c
	}

	for _, c := range p.Categories {
		cp := fmt.Sprintf("%s category %q", prefix, c.Name)
		if c.Required < 0 {
			errs = append(errs, fmt.Sprintf("%s: Required must be >= 0, got %d", cp, c.Required))
		}
		if totalTerms > 0 && (c.UnlockTerm < 1 || c.UnlockTerm > totalTerms) {
			errs = append(errs, fmt.Sprintf("%s: UnlockTerm must be in 1..%d, got %d", cp, totalTerms, c.UnlockTerm))
		}
		if c.LockAfterTerm != nil {
			lock := *c.LockAfterTerm
			if totalTerms > 0 && (lock < 1 || lock > totalTerms) {
				errs = append(errs, fmt.Sprintf("%s: LockAfterTerm must be in 1..%d, got %d", cp, totalTerms, lock))
			}
			if c.UnlockTerm > lock {
				errs = append(errs, fmt.Sprintf("%s: UnlockTerm %d is after LockAfterTerm %d", cp, c.UnlockTerm, lock))
			}
		}
		if c.SubsetOf != "" {
			parent, ok := byName[c.SubsetOf]
			switch {
			case !ok:
				errs = append(errs, fmt.Sprintf("%s: subset of nonexistent category %q", cp, c.SubsetOf))
			case parent.Name == c.Name:
				errs = append(errs, fmt.Sprintf("%s: cannot be a subset of itself", cp))
			case parent.IsSubset():
				errs = append(errs, fmt.Sprintf("%s: parent %q is itself a subset", cp, parent.Name))
			}
		}
	}

	return errs
}
