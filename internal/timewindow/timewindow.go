// Package timewindow enforces the years in which phase-restricted credit
// categories may be earned. A violation makes a student ineligible no
// matter what any statistical model predicts.
package timewindow

// Violation messages, one per rule.
const (
	MsgPEP      = "PEP credits are only allowed in the first 1.5 years"
	MsgSIP      = "SIP can only be completed after 1st year"
	MsgShortIIP = "Short IIP can only be completed after 2nd year"
	MsgLongIIP  = "Long IIP is only allowed in the final 6 months"
)

const (
	pepLastYear       = 2
	sipFirstYear      = 2
	shortIIPFirstYear = 3
)

// Credits holds the phase-restricted credits claimed by a student.
type Credits struct {
	PEP      int
	SIP      int
	ShortIIP int
	LongIIP  int
}

// CheckViolations returns every time-window rule the claimed credits break.
// All rules are evaluated; an empty result means no violation.
func CheckViolations(degreeYears, currentYear, pep, sip, shortIIP, longIIP int) []string {
	return Check(degreeYears, currentYear, Credits{PEP: pep, SIP: sip, ShortIIP: shortIIP, LongIIP: longIIP})
}

// Check is CheckViolations over a Credits value.
func Check(degreeYears, currentYear int, c Credits) []string {
	var violations []string

	if c.PEP > 0 && currentYear > pepLastYear {
		violations = append(violations, MsgPEP)
	}
	if c.SIP > 0 && currentYear < sipFirstYear {
		violations = append(violations, MsgSIP)
	}
	if c.ShortIIP > 0 && currentYear < shortIIPFirstYear {
		violations = append(violations, MsgShortIIP)
	}
	if c.LongIIP > 0 && currentYear < degreeYears {
		violations = append(violations, MsgLongIIP)
	}

	return violations
}
