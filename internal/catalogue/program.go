package catalogue

import (
	"math"
	"slices"
)

// DefaultTermsPerYear is the number of academic terms in one year.
const DefaultTermsPerYear = 4

// DegreeProgram is one degree with its credit requirement and category set.
type DegreeProgram struct {
	ID           string
	Name         string
	TotalCredits int
	TotalYears   int
	TermsPerYear int
	Aliases      []string
	Categories   []CreditCategory
}

// TotalTerms returns the number of terms in the program.
func (p *DegreeProgram) TotalTerms() int {
	return p.TotalYears * p.TermsPerYear
}

// Category returns the category with the given name.
func (p *DegreeProgram) Category(name string) (CreditCategory, bool) {
	for _, c := range p.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return CreditCategory{}, false
}

// Expectations returns the term expectation table for the program.
func (p *DegreeProgram) Expectations() TermExpectationTable {
	return NewTermExpectationTable(p.TotalCredits, p.TotalTerms())
}

// YearOfTerm converts a term index into its 1-based year of study.
func (p *DegreeProgram) YearOfTerm(term int) int {
	if p.TermsPerYear <= 0 || term <= 0 {
		return 0
	}
	return (term + p.TermsPerYear - 1) / p.TermsPerYear
}

// Phase describes where a term sits within the program.
type Phase string

const (
	PhaseEarly Phase = "Early Phase"
	PhaseMid   Phase = "Mid Phase"
	PhaseFinal Phase = "Final Phase"
)

// midPhaseTerm is the first term of the mid phase.
const midPhaseTerm = 5

// AcademicPhase classifies a term. The last three terms are the final phase.
func (p *DegreeProgram) AcademicPhase(term int) Phase {
	switch {
	case term >= p.TotalTerms()-2:
		return PhaseFinal
	case term >= midPhaseTerm:
		return PhaseMid
	default:
		return PhaseEarly
	}
}

// TermExpectationTable maps a term index to cumulative credits expected
// by the end of that term. Index 0 is unused.
type TermExpectationTable struct {
	expected []int
}

// NewTermExpectationTable spreads totalCredits linearly over totalTerms,
// rounding each term to the nearest credit.
func NewTermExpectationTable(totalCredits, totalTerms int) TermExpectationTable {
	if totalTerms <= 0 {
		return TermExpectationTable{}
	}
	expected := make([]int, totalTerms+1)
	for term := 1; term <= totalTerms; term++ {
		expected[term] = int(math.Round(float64(totalCredits) * float64(term) / float64(totalTerms)))
	}
	return TermExpectationTable{expected: expected}
}

// Expected returns the expected cumulative credits at the given term, and
// false if the term is outside the table.
func (t TermExpectationTable) Expected(term int) (int, bool) {
	if term < 1 || term >= len(t.expected) {
		return 0, false
	}
	return t.expected[term], true
}

// Terms returns the number of terms in the table.
func (t TermExpectationTable) Terms() int {
	if len(t.expected) == 0 {
		return 0
	}
	return len(t.expected) - 1
}

// Values returns expected credits for terms 1..Terms() in order.
func (t TermExpectationTable) Values() []int {
	if len(t.expected) == 0 {
		return nil
	}
	return slices.Clone(t.expected[1:])
}
