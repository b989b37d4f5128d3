package catalogue

// Group buckets categories for the distribution breakdown.
type Group string

const (
	GroupCore         Group = "core"
	GroupGeneralEd    Group = "general-education"
	GroupExperiential Group = "experiential"
)

// AllGroups returns all groups in display order.
func AllGroups() []Group {
	return []Group{GroupCore, GroupGeneralEd, GroupExperiential}
}

// DisplayName returns a human-readable label for the group.
func (g Group) DisplayName() string {
	switch g {
	case GroupCore:
		return "Core"
	case GroupGeneralEd:
		return "General Education"
	case GroupExperiential:
		return "Experiential"
	default:
		return string(g)
	}
}

// Well-known category names used by the default catalogue and the
// time-window rules.
const (
	CategoryCore       = "Core"
	CategoryPEP        = "PEP"
	CategoryGETotal    = "GE (Total)"
	CategoryHumanities = "Humanities"
	CategoryExecution  = "Effective Execution"
	CategorySIP        = "SIP"
	CategoryShortIIP   = "Short IIP"
	CategoryLongIIP    = "Long IIP"
	CategoryRI         = "RI"
)

// CreditCategory is a named requirement bucket with a term window.
type CreditCategory struct {
	Name       string
	Required   int
	UnlockTerm int // inclusive; credits count from this term on

	// LockAfterTerm is the last term in which the category still counts.
	// Nil means the category never locks.
	LockAfterTerm *int

	// SubsetOf names the parent category this one is contained in
	// (Humanities inside GE). Subsets are evaluated on their own but not
	// added to the aggregate earned total.
	SubsetOf string

	Group Group
}

// IsSubset reports whether the category is a display-only subset.
func (c CreditCategory) IsSubset() bool {
	return c.SubsetOf != ""
}

// AvailableAt reports whether the category counts in the given term.
func (c CreditCategory) AvailableAt(term int) bool {
	if term < c.UnlockTerm {
		return false
	}
	if c.LockAfterTerm != nil && term > *c.LockAfterTerm {
		return false
	}
	return true
}

// LockAfter is a helper for building categories with an upper bound.
func LockAfter(term int) *int {
	return &term
}
