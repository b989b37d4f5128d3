package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"students", "student_credits", "evaluations"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestStudentCreateAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.StudentRepo()
	ctx := context.Background()

	st := &Student{
		Name:        "Asha",
		Program:     "btech",
		CurrentTerm: 8,
		Credits:     map[string]int{"Core": 60, "PEP": 8},
	}
	require.NoError(t, repo.Create(ctx, st))
	require.NotEmpty(t, st.ID)

	got, err := repo.Get(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, "btech", got.Program)
	assert.Equal(t, 8, got.CurrentTerm)
	assert.Equal(t, map[string]int{"Core": 60, "PEP": 8}, got.Credits)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStudentGetNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.StudentRepo().Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrStudentNotFound))
}

func TestStudentSetCreditsUpserts(t *testing.T) {
	s := openTestStore(t)
	repo := s.StudentRepo()
	ctx := context.Background()

	st := &Student{Name: "Ravi", Program: "bba", CurrentTerm: 3,
		Credits: map[string]int{"Core": 20}}
	require.NoError(t, repo.Create(ctx, st))

	require.NoError(t, repo.SetCredits(ctx, st.ID, map[string]int{"Core": 25, "SIP": 3}))

	got, err := repo.Get(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Core": 25, "SIP": 3}, got.Credits)
}

func TestStudentSetCreditsUnknownStudent(t *testing.T) {
	s := openTestStore(t)
	err := s.StudentRepo().SetCredits(context.Background(), "nobody", map[string]int{"Core": 1})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStudentSetTerm(t *testing.T) {
	s := openTestStore(t)
	repo := s.StudentRepo()
	ctx := context.Background()

	st := &Student{Name: "Meera", Program: "law", CurrentTerm: 1}
	require.NoError(t, repo.Create(ctx, st))
	require.NoError(t, repo.SetTerm(ctx, st.ID, 5))

	got, err := repo.Get(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.CurrentTerm)
	assert.Empty(t, got.Credits)

	assert.ErrorIs(t, repo.SetTerm(ctx, "nobody", 2), ErrStudentNotFound)
}

func TestStudentListOrderedByName(t *testing.T) {
	s := openTestStore(t)
	repo := s.StudentRepo()
	ctx := context.Background()

	for _, name := range []string{"Zoya", "Arjun", "Maya"} {
		require.NoError(t, repo.Create(ctx, &Student{Name: name, Program: "btech", CurrentTerm: 1}))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Arjun", list[0].Name)
	assert.Equal(t, "Maya", list[1].Name)
	assert.Equal(t, "Zoya", list[2].Name)
}

func TestEvaluationAppendAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	st := &Student{Name: "Kiran", Program: "btech", CurrentTerm: 8}
	require.NoError(t, s.StudentRepo().Create(ctx, st))

	evals := s.EvaluationRepo()
	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		rec := &EvaluationRecord{
			StudentID:     st.ID,
			Program:       "btech",
			Term:          6 + i,
			EarnedTotal:   50 + i*10,
			ExpectedByNow: 80,
			Ratio:         0.75,
			Status:        "Attention Needed",
			Risk:          "Medium",
			Missing:       []string{"Core"},
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, evals.Append(ctx, rec))
		require.NotEmpty(t, rec.ID)
	}

	all, err := evals.ListForStudent(ctx, st.ID, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 8, all[0].Term, "newest first")
	assert.Equal(t, []string{"Core"}, all[0].Missing)
	assert.InDelta(t, 0.75, all[0].Ratio, 1e-9)

	limited, err := evals.ListForStudent(ctx, st.ID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestEvaluationNilMissingRoundTrips(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	st := &Student{Name: "Dev", Program: "bba", CurrentTerm: 12}
	require.NoError(t, s.StudentRepo().Create(ctx, st))
	require.NoError(t, s.EvaluationRepo().Append(ctx, &EvaluationRecord{
		StudentID: st.ID, Program: "bba", Term: 12,
		Status: "Eligible / On Track", Risk: "Low",
	}))

	recs, err := s.EvaluationRepo().ListForStudent(ctx, st.ID, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Empty(t, recs[0].Missing)
}

func TestEvaluationRequiresStudent(t *testing.T) {
	s := openTestStore(t)
	err := s.EvaluationRepo().Append(context.Background(), &EvaluationRecord{
		StudentID: "ghost", Program: "btech", Term: 1,
	})
	assert.Error(t, err, "foreign key should reject unknown student")
}
