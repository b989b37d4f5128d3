package predict

import "context"

// Minimums is the per-category floor a student must reach to be eligible.
type Minimums struct {
	PEP        int
	Humanities int
	SIP        int
	ShortIIP   int
	LongIIP    int
}

// DefaultMinimums returns the institutional category floors.
func DefaultMinimums() Minimums {
	return Minimums{PEP: 12, Humanities: 8, SIP: 3, ShortIIP: 2, LongIIP: 10}
}

// RequirementsModel predicts eligibility by the rule the historical
// records were labelled with: the degree total is met and every
// restricted category reaches its floor.
type RequirementsModel struct {
	RequiredTotal int
	Minimums      Minimums
}

// NewRequirementsModel creates a model for a degree of the given size.
func NewRequirementsModel(requiredTotal int) *RequirementsModel {
	return &RequirementsModel{RequiredTotal: requiredTotal, Minimums: DefaultMinimums()}
}

func (m *RequirementsModel) Name() string { return "requirements" }

func (m *RequirementsModel) Predict(_ context.Context, f Features) (bool, error) {
	if f.TotalCredits < m.RequiredTotal {
		return false, nil
	}
	checks := []struct{ got, floor int }{
		{f.PEP, m.Minimums.PEP},
		{f.Humanities, m.Minimums.Humanities},
		{f.SIP, m.Minimums.SIP},
		{f.ShortIIP, m.Minimums.ShortIIP},
		{f.LongIIP, m.Minimums.LongIIP},
	}
	for _, c := range checks {
		if c.got < c.floor {
			return false, nil
		}
	}
	return true, nil
}
