package eligibility

import "fmt"

// InvalidSnapshotError indicates a snapshot term outside the program.
type InvalidSnapshotError struct {
	Term       int
	TotalTerms int
}

func (e *InvalidSnapshotError) Error() string {
	return fmt.Sprintf("invalid snapshot: term %d outside 1..%d", e.Term, e.TotalTerms)
}
