package predict

import (
	"context"
	"errors"

	"github.com/abhisek/credaudit/internal/risk"
	"github.com/abhisek/credaudit/internal/timewindow"
)

// Input is everything Decide needs for one student.
type Input struct {
	DegreeYears   int
	RequiredTotal int
	Features      Features
}

// Decide runs the time-window rules first. Any violation makes the student
// NOT ELIGIBLE without consulting the model. Otherwise the predictor
// decides; if it fails the verdict is CANNOT EVALUATE, never a default.
func Decide(ctx context.Context, p Predictor, in Input) Verdict {
	f := in.Features
	violations := timewindow.CheckViolations(in.DegreeYears, f.YearOfStudy, f.PEP, f.SIP, f.ShortIIP, f.LongIIP)
	if len(violations) > 0 {
		return Verdict{
			Outcome:        OutcomeNotEligible,
			TimeRestricted: true,
			Violations:     violations,
		}
	}

	if p == nil {
		return Verdict{
			Outcome: OutcomeCannotDecide,
			Err:     &ErrPredictorUnavailable{Predictor: "none", Err: errors.New("no predictor configured")},
		}
	}

	eligible, err := p.Predict(ctx, f)
	if err != nil {
		return Verdict{Outcome: OutcomeCannotDecide, Predictor: p.Name(), Err: err}
	}

	v := Verdict{
		Outcome:   OutcomeNotEligible,
		Predictor: p.Name(),
		Risk:      risk.ProgressLevel(f.TotalCredits, in.RequiredTotal, eligible),
	}
	if eligible {
		v.Outcome = OutcomeEligible
	}
	return v
}
