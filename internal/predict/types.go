// Package predict combines the authoritative time-window rules with a
// statistical eligibility model into a single graduation verdict.
package predict

import (
	"context"

	"github.com/abhisek/credaudit/internal/risk"
)

// Features is the fixed input vector the eligibility model consumes.
type Features struct {
	PEP                int `json:"pep_credits"`
	Humanities         int `json:"humanities_credits"`
	SIP                int `json:"sip_credits"`
	ShortIIP           int `json:"short_iip_credits"`
	LongIIP            int `json:"long_iip_credits"`
	EffectiveExecution int `json:"effective_execution_credits"`
	TotalCredits       int `json:"total_credits"`
	YearOfStudy        int `json:"year_of_study"`
}

// Predictor returns whether a student is predicted to be degree eligible.
type Predictor interface {
	Name() string
	Predict(ctx context.Context, f Features) (bool, error)
}

// Outcome is the overall eligibility decision.
type Outcome string

const (
	OutcomeEligible     Outcome = "ELIGIBLE"
	OutcomeNotEligible  Outcome = "NOT ELIGIBLE"
	OutcomeCannotDecide Outcome = "CANNOT EVALUATE"
)

// Verdict is the result of Decide.
type Verdict struct {
	Outcome Outcome

	// TimeRestricted is set when the time-window rules forced the outcome.
	TimeRestricted bool
	Violations     []string

	// Risk is empty when the outcome is time restricted or undecided.
	Risk      risk.Level
	Predictor string
	Err       error
}
