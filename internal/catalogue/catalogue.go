// Package catalogue holds degree programs, their credit categories and the
// term expectation tables used to score progress.
package catalogue

import (
	"fmt"
	"slices"
	"strings"
)

// Catalogue is an immutable set of degree programs.
type Catalogue struct {
	programs []DegreeProgram
	byID     map[string]int
}

// NewCatalogue validates the programs and builds a catalogue.
// All problems are reported together in a *ConfigurationError.
func NewCatalogue(programs ...DegreeProgram) (*Catalogue, error) {
	if err := validatePrograms(programs); err != nil {
		return nil, err
	}

	c := &Catalogue{
		programs: make([]DegreeProgram, len(programs)),
		byID:     make(map[string]int, len(programs)),
	}
	for i, p := range programs {
		p.Aliases = slices.Clone(p.Aliases)
		p.Categories = cloneCategories(p.Categories)
		c.programs[i] = p
		c.byID[normalizeID(p.ID)] = i
		for _, alias := range p.Aliases {
			c.byID[normalizeID(alias)] = i
		}
	}
	return c, nil
}

// Program returns a copy of the program with the given ID or alias.
func (c *Catalogue) Program(id string) (DegreeProgram, error) {
	i, ok := c.byID[normalizeID(id)]
	if !ok {
		return DegreeProgram{}, fmt.Errorf("degree program not found: %q", id)
	}
	p := c.programs[i]
	p.Aliases = slices.Clone(p.Aliases)
	p.Categories = cloneCategories(p.Categories)
	return p, nil
}

// Programs returns all programs in declared order.
func (c *Catalogue) Programs() []DegreeProgram {
	out := make([]DegreeProgram, len(c.programs))
	for i, p := range c.programs {
		p.Aliases = slices.Clone(p.Aliases)
		p.Categories = cloneCategories(p.Categories)
		out[i] = p
	}
	return out
}

func cloneCategories(in []CreditCategory) []CreditCategory {
	out := make([]CreditCategory, len(in))
	for i, c := range in {
		if c.LockAfterTerm != nil {
			c.LockAfterTerm = LockAfter(*c.LockAfterTerm)
		}
		out[i] = c
	}
	return out
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
