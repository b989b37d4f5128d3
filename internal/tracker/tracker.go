// Package tracker ties the catalogue, evaluator and classifier to stored
// student records.
package tracker

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/credaudit/internal/catalogue"
	"github.com/abhisek/credaudit/internal/eligibility"
	"github.com/abhisek/credaudit/internal/metrics"
	"github.com/abhisek/credaudit/internal/predict"
	"github.com/abhisek/credaudit/internal/store"
	"github.com/abhisek/credaudit/internal/timewindow"
)

// Report is one evaluation together with the inputs that produced it.
type Report struct {
	Program   catalogue.DegreeProgram
	Snapshot  eligibility.Snapshot
	Result    *eligibility.Result
	Breakdown eligibility.Breakdown

	// Student is nil for ad hoc evaluations.
	Student *store.Student
}

// Service runs evaluations and predictions for programs in a catalogue.
type Service struct {
	catalogue   *catalogue.Catalogue
	students    store.StudentRepo
	evaluations store.EvaluationRepo
	predictor   predict.Predictor
	metrics     *metrics.Recorder
	logger      *zap.Logger
}

// NewService creates a tracker. The repos may be nil when only ad hoc
// operations are used. The default predictor is the requirements model
// of each program.
func NewService(cat *catalogue.Catalogue, students store.StudentRepo, evaluations store.EvaluationRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalogue:   cat,
		students:    students,
		evaluations: evaluations,
		logger:      logger,
	}
}

// WithPredictor sets the classifier used by Predict and PredictStudent.
func (s *Service) WithPredictor(p predict.Predictor) *Service {
	s.predictor = p
	return s
}

// WithMetrics sets the recorder for evaluation and verdict counters.
func (s *Service) WithMetrics(rec *metrics.Recorder) *Service {
	s.metrics = rec
	return s
}

// Catalogue returns the catalogue the service evaluates against.
func (s *Service) Catalogue() *catalogue.Catalogue {
	return s.catalogue
}

// EvaluateAdHoc evaluates a snapshot without touching storage.
func (s *Service) EvaluateAdHoc(programID string, snap eligibility.Snapshot) (*Report, error) {
	program, err := s.catalogue.Program(programID)
	if err != nil {
		return nil, err
	}
	return s.evaluate(program, snap)
}

func (s *Service) evaluate(program catalogue.DegreeProgram, snap eligibility.Snapshot) (*Report, error) {
	res, err := eligibility.Evaluate(program, snap)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveEvaluation(program.ID, string(res.AcademicStatus), string(res.RiskLevel))
	return &Report{
		Program:   program,
		Snapshot:  snap,
		Result:    res,
		Breakdown: eligibility.Summarize(program, snap, res.EarnedTotal),
	}, nil
}

// EvaluateStudent evaluates the stored student at their current term and
// appends the outcome to the evaluation history.
func (s *Service) EvaluateStudent(ctx context.Context, id string) (*Report, error) {
	st, err := s.students.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	program, err := s.catalogue.Program(st.Program)
	if err != nil {
		return nil, fmt.Errorf("student %s: %w", st.ID, err)
	}

	rep, err := s.evaluate(program, snapshotOf(st))
	if err != nil {
		return nil, fmt.Errorf("student %s: %w", st.ID, err)
	}
	rep.Student = st

	res := rep.Result
	rec := &store.EvaluationRecord{
		StudentID:         st.ID,
		Program:           program.ID,
		Term:              res.Term,
		EarnedTotal:       res.EarnedTotal,
		ExpectedByNow:     res.ExpectedByNow,
		PendingTotal:      res.PendingTotal,
		FutureLockedTotal: res.FutureLockedTotal,
		Ratio:             res.PerformanceRatio,
		Status:            string(res.AcademicStatus),
		Risk:              string(res.RiskLevel),
		Missing:           res.MissingCategories,
	}
	if err := s.evaluations.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("record evaluation: %w", err)
	}

	s.logger.Info("student evaluated",
		zap.String("student", st.ID),
		zap.String("program", program.ID),
		zap.Int("term", res.Term),
		zap.Int("earned", res.EarnedTotal),
		zap.Int("expected", res.ExpectedByNow),
		zap.String("status", string(res.AcademicStatus)),
		zap.String("risk", string(res.RiskLevel)),
	)
	return rep, nil
}

// InspectStudent evaluates the stored student without recording history.
func (s *Service) InspectStudent(ctx context.Context, id string) (*Report, error) {
	st, program, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	rep, err := s.evaluate(program, snapshotOf(st))
	if err != nil {
		return nil, fmt.Errorf("student %s: %w", st.ID, err)
	}
	rep.Student = st
	return rep, nil
}

// EvaluateAll evaluates every stored student with at most concurrency
// evaluations in flight. Reports are returned in student name order.
func (s *Service) EvaluateAll(ctx context.Context, concurrency int) ([]*Report, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]*Report, len(students))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for i, st := range students {
		g.Go(func() error {
			rep, err := s.EvaluateStudent(ctx, st.ID)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Predict decides eligibility for an ad hoc snapshot.
func (s *Service) Predict(ctx context.Context, programID string, snap eligibility.Snapshot) (predict.Verdict, error) {
	program, err := s.catalogue.Program(programID)
	if err != nil {
		return predict.Verdict{}, err
	}
	return s.decide(ctx, program, snap)
}

// PredictStudent decides eligibility for a stored student.
func (s *Service) PredictStudent(ctx context.Context, id string) (predict.Verdict, error) {
	st, err := s.students.Get(ctx, id)
	if err != nil {
		return predict.Verdict{}, err
	}
	program, err := s.catalogue.Program(st.Program)
	if err != nil {
		return predict.Verdict{}, fmt.Errorf("student %s: %w", st.ID, err)
	}
	return s.decide(ctx, program, snapshotOf(st))
}

func (s *Service) decide(ctx context.Context, program catalogue.DegreeProgram, snap eligibility.Snapshot) (predict.Verdict, error) {
	if snap.CurrentTerm < 1 || snap.CurrentTerm > program.TotalTerms() {
		return predict.Verdict{}, &eligibility.InvalidSnapshotError{Term: snap.CurrentTerm, TotalTerms: program.TotalTerms()}
	}

	p := s.predictor
	if p == nil {
		p = predict.NewRequirementsModel(program.TotalCredits)
	}
	v := predict.Decide(ctx, p, predict.InputFor(program, snap))
	s.metrics.ObserveVerdict(string(v.Outcome), len(v.Violations))

	if v.Err != nil {
		s.logger.Warn("eligibility undecided", zap.String("program", program.ID), zap.Error(v.Err))
	}
	return v, nil
}

// CheckTimeWindows reports the time-window violations for the year the
// snapshot's term falls in.
func (s *Service) CheckTimeWindows(programID string, snap eligibility.Snapshot) ([]string, error) {
	program, err := s.catalogue.Program(programID)
	if err != nil {
		return nil, err
	}
	if snap.CurrentTerm < 1 || snap.CurrentTerm > program.TotalTerms() {
		return nil, &eligibility.InvalidSnapshotError{Term: snap.CurrentTerm, TotalTerms: program.TotalTerms()}
	}
	f := predict.FeaturesFrom(program, snap)
	return timewindow.Check(program.TotalYears, f.YearOfStudy, timewindow.Credits{
		PEP:      f.PEP,
		SIP:      f.SIP,
		ShortIIP: f.ShortIIP,
		LongIIP:  f.LongIIP,
	}), nil
}

func snapshotOf(st *store.Student) eligibility.Snapshot {
	return eligibility.Snapshot{CurrentTerm: st.CurrentTerm, Earned: st.Credits}
}
