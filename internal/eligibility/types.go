package eligibility

import (
	"github.com/abhisek/credaudit/internal/catalogue"
	"github.com/abhisek/credaudit/internal/risk"
)

// Status is the evaluation state of one category.
type Status string

const (
	StatusCompleted    Status = "Completed"
	StatusPending      Status = "Pending"
	StatusNotAvailable Status = "Not Available"
)

// Snapshot is a student's position at the time of an evaluation.
type Snapshot struct {
	CurrentTerm int
	// Earned maps category name to credits earned. Missing categories
	// count as zero; names not in the catalogue are ignored.
	Earned map[string]int
}

// CategoryEvaluation is the outcome for a single credit category.
type CategoryEvaluation struct {
	Name      string
	Required  int
	Earned    int
	Available bool
	Subset    bool
	Status    Status

	// Deficit and Progress are nil when the category is not available.
	Deficit  *int
	Progress *int
}

// Result aggregates all category evaluations for a snapshot.
type Result struct {
	Program    string
	Term       int
	Phase      catalogue.Phase
	TotalTerms int
	Categories []CategoryEvaluation

	EarnedTotal       int // available, non-subset categories only
	ExpectedByNow     int
	PendingTotal      int
	FutureLockedTotal int
	PerformanceRatio  float64
	AcademicStatus    risk.AcademicStatus
	RiskLevel         risk.Level

	// MissingCategories lists categories with a nonzero deficit in
	// catalogue order.
	MissingCategories []string
}
