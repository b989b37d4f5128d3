package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/credaudit/internal/catalogue"
	"github.com/abhisek/credaudit/internal/eligibility"
	"github.com/abhisek/credaudit/internal/store"
)

// CreditsError lists every problem found in a credit update.
type CreditsError struct {
	Program  string
	Problems []string
}

func (e *CreditsError) Error() string {
	return fmt.Sprintf("invalid credits for %s: %s", e.Program, strings.Join(e.Problems, "; "))
}

// RegisterStudent validates and stores a new student. The program may be
// given by ID or alias; the canonical ID is stored.
func (s *Service) RegisterStudent(ctx context.Context, name, programID string, term int, credits map[string]int) (*store.Student, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("student name is required")
	}
	program, err := s.catalogue.Program(programID)
	if err != nil {
		return nil, err
	}
	if err := checkTerm(program, term); err != nil {
		return nil, err
	}
	if err := checkCredits(program, credits); err != nil {
		return nil, err
	}

	st := &store.Student{
		Name:        strings.TrimSpace(name),
		Program:     program.ID,
		CurrentTerm: term,
		Credits:     credits,
	}
	if err := s.students.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}
	s.logger.Info("student registered",
		zap.String("student", st.ID),
		zap.String("program", program.ID),
		zap.Int("term", term),
	)
	return st, nil
}

// Student returns a stored student.
func (s *Service) Student(ctx context.Context, id string) (*store.Student, error) {
	return s.students.Get(ctx, id)
}

// Students lists stored students.
func (s *Service) Students(ctx context.Context) ([]store.Student, error) {
	return s.students.List(ctx)
}

// RecordCredits upserts earned credits for a stored student. Every
// category must exist in the student's program.
func (s *Service) RecordCredits(ctx context.Context, id string, credits map[string]int) error {
	st, program, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := checkCredits(program, credits); err != nil {
		return err
	}
	if err := s.students.SetCredits(ctx, st.ID, credits); err != nil {
		return err
	}
	s.logger.Info("credits recorded",
		zap.String("student", st.ID),
		zap.Strings("categories", sortedKeys(credits)),
	)
	return nil
}

// SetTerm moves a stored student to another term of their program.
func (s *Service) SetTerm(ctx context.Context, id string, term int) error {
	st, program, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := checkTerm(program, term); err != nil {
		return err
	}
	if err := s.students.SetTerm(ctx, st.ID, term); err != nil {
		return err
	}
	s.logger.Info("term updated", zap.String("student", st.ID), zap.Int("term", term))
	return nil
}

// History returns the most recent evaluations of a student, newest first.
func (s *Service) History(ctx context.Context, id string, limit int) ([]store.EvaluationRecord, error) {
	if _, err := s.students.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.evaluations.ListForStudent(ctx, id, limit)
}

func (s *Service) load(ctx context.Context, id string) (*store.Student, catalogue.DegreeProgram, error) {
	st, err := s.students.Get(ctx, id)
	if err != nil {
		return nil, catalogue.DegreeProgram{}, err
	}
	program, err := s.catalogue.Program(st.Program)
	if err != nil {
		return nil, catalogue.DegreeProgram{}, fmt.Errorf("student %s: %w", st.ID, err)
	}
	return st, program, nil
}

func checkTerm(program catalogue.DegreeProgram, term int) error {
	if term < 1 || term > program.TotalTerms() {
		return &eligibility.InvalidSnapshotError{Term: term, TotalTerms: program.TotalTerms()}
	}
	return nil
}

func checkCredits(program catalogue.DegreeProgram, credits map[string]int) error {
	var problems []string
	for _, name := range sortedKeys(credits) {
		if _, ok := program.Category(name); !ok {
			problems = append(problems, fmt.Sprintf("unknown category %q", name))
			continue
		}
		if credits[name] < 0 {
			problems = append(problems, fmt.Sprintf("%s: credits must be non-negative, got %d", name, credits[name]))
		}
	}
	if len(problems) > 0 {
		return &CreditsError{Program: program.ID, Problems: problems}
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
