package store

import (
	"context"
	"errors"
	"time"
)

// ErrStudentNotFound is returned when no student has the requested ID.
var ErrStudentNotFound = errors.New("student not found")

// Student is a persisted student record.
type Student struct {
	ID          string
	Name        string
	Program     string
	CurrentTerm int
	Credits     map[string]int // category name -> credits earned
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StudentRepo manages student records.
type StudentRepo interface {
	// Create stores a new student and assigns its ID.
	Create(ctx context.Context, s *Student) error

	// Get returns the student with its credits, or ErrStudentNotFound.
	Get(ctx context.Context, id string) (*Student, error)

	// List returns all students ordered by name, without credits.
	List(ctx context.Context) ([]Student, error)

	// SetCredits upserts the given category credits.
	SetCredits(ctx context.Context, id string, credits map[string]int) error

	// SetTerm updates the student's current term.
	SetTerm(ctx context.Context, id string, term int) error
}

// EvaluationRecord is the audit row written for each evaluation.
type EvaluationRecord struct {
	ID                string
	StudentID         string
	Program           string
	Term              int
	EarnedTotal       int
	ExpectedByNow     int
	PendingTotal      int
	FutureLockedTotal int
	Ratio             float64
	Status            string
	Risk              string
	Missing           []string
	CreatedAt         time.Time
}

// EvaluationRepo provides append and query access to evaluation history.
type EvaluationRepo interface {
	// Append records an evaluation and assigns its ID.
	Append(ctx context.Context, rec *EvaluationRecord) error

	// ListForStudent returns the most recent evaluations first.
	// A limit of 0 means no limit.
	ListForStudent(ctx context.Context, studentID string, limit int) ([]EvaluationRecord, error)
}
