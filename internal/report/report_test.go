package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/credaudit/internal/catalogue"
	"github.com/abhisek/credaudit/internal/eligibility"
	"github.com/abhisek/credaudit/internal/predict"
	"github.com/abhisek/credaudit/internal/risk"
	"github.com/abhisek/credaudit/internal/store"
	"github.com/abhisek/credaudit/internal/timewindow"
	"github.com/abhisek/credaudit/internal/tracker"
	"github.com/abhisek/credaudit/internal/ui/theme"
)

func evaluate(t *testing.T, program string, snap eligibility.Snapshot) *tracker.Report {
	t.Helper()
	rep, err := tracker.NewService(catalogue.Default(), nil, nil, nil).EvaluateAdHoc(program, snap)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	return rep
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestEvaluationReport(t *testing.T) {
	rep := evaluate(t, "btech", eligibility.Snapshot{
		CurrentTerm: 8,
		Earned:      map[string]int{catalogue.CategoryCore: 60, catalogue.CategoryHumanities: 4},
	})
	out := New(false).Evaluation(rep)

	assertContains(t, out,
		"Attention Needed",
		"Medium Risk",
		"B.Tech / TSM (4 Years) (btech)",
		"8 of 16",
		"Mid Phase",
		"Expected by now:",
		"0.75",
		"Category",
		"Remaining",
		"65%",
		"Missing requirements: Core, GE (Total), Humanities, Effective Execution, SIP",
		"60 / 160 credits",
		"100 credits remaining to degree",
	)
	if strings.Contains(out, "\x1b[") {
		t.Error("plain renderer emitted escape sequences")
	}
}

func TestEvaluationReportLockedCategoriesShowDash(t *testing.T) {
	rep := evaluate(t, "btech", eligibility.Snapshot{CurrentTerm: 1})
	out := New(false).Evaluation(rep)

	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, catalogue.CategoryLongIIP) {
			if !strings.Contains(line, " - ") || !strings.Contains(line, string(eligibility.StatusNotAvailable)) {
				t.Errorf("locked row = %q, want dashes and %q", line, eligibility.StatusNotAvailable)
			}
			return
		}
	}
	t.Errorf("no %s row in:\n%s", catalogue.CategoryLongIIP, out)
}

func TestEvaluationReportAllMet(t *testing.T) {
	rep := evaluate(t, "bba", eligibility.Snapshot{
		CurrentTerm: 1,
		Earned: map[string]int{
			catalogue.CategoryCore:       68,
			catalogue.CategoryPEP:        12,
			catalogue.CategoryGETotal:    32,
			catalogue.CategoryHumanities: 8,
			catalogue.CategoryExecution:  3,
		},
	})
	out := New(false).Evaluation(rep)
	assertContains(t, out, "All available requirements are met.", string(risk.StatusOnTrack))
}

func TestEvaluationReportColor(t *testing.T) {
	rep := evaluate(t, "btech", eligibility.Snapshot{CurrentTerm: 1})
	out := New(true).Evaluation(rep)
	if !strings.Contains(out, "\x1b[") {
		t.Error("color renderer emitted no escape sequences")
	}
}

func TestEvaluationBannerFollowsStatus(t *testing.T) {
	rep := evaluate(t, "btech", eligibility.Snapshot{
		CurrentTerm: 8,
		Earned:      map[string]int{catalogue.CategoryCore: 72},
	})
	if rep.Result.AcademicStatus != risk.StatusPending {
		t.Fatalf("status = %q, want %q", rep.Result.AcademicStatus, risk.StatusPending)
	}
	out := New(true).Evaluation(rep)

	label := "On Track (Pending)  |  Low Risk"
	info := theme.Banner.Foreground(theme.Info).BorderForeground(theme.Info).Render(label)
	success := theme.Banner.Foreground(theme.Success).BorderForeground(theme.Success).Render(label)
	if !strings.Contains(out, info) {
		t.Errorf("banner not rendered in the info tone:\n%q", out)
	}
	if strings.Contains(out, success) {
		t.Error("banner rendered in the risk tone instead of the status tone")
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		right bool
		want  string
	}{
		{"pads short", "Core", 6, false, "Core  "},
		{"right aligns", "12", 4, true, "  12"},
		{"fits exactly", "Core", 4, false, "Core"},
		{"truncates ascii", "Effective Execution", 10, false, "Effective…"},
		{"truncates wide runes", strings.Repeat("研", 14), 26, false, strings.Repeat("研", 12) + "… "},
		{"wide runes right aligned", strings.Repeat("研", 6), 8, true, " " + strings.Repeat("研", 3) + "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cell(tt.in, tt.width, tt.right)
			if got != tt.want {
				t.Errorf("cell(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
			if w := lipgloss.Width(got); w != tt.width {
				t.Errorf("width = %d, want %d", w, tt.width)
			}
		})
	}
}

func TestProgramWideCategoryName(t *testing.T) {
	name := strings.Repeat("学", 13)
	p := catalogue.DegreeProgram{
		ID: "intl", Name: "International", TotalCredits: 40, TotalYears: 1, TermsPerYear: 4,
		Categories: []catalogue.CreditCategory{{Name: name, Required: 40, UnlockTerm: 1}},
	}
	out := New(false).Program(p)
	if strings.ContainsRune(out, 0) {
		t.Fatalf("output contains NUL bytes:\n%q", out)
	}
	assertContains(t, out, strings.Repeat("学", 10)+"…")
}

func TestVerdict(t *testing.T) {
	r := New(false)

	tests := []struct {
		name  string
		v     predict.Verdict
		wants []string
	}{
		{
			name: "time restricted",
			v: predict.Verdict{
				Outcome:        predict.OutcomeNotEligible,
				TimeRestricted: true,
				Violations:     []string{timewindow.MsgPEP},
			},
			wants: []string{"NOT ELIGIBLE", "(time restricted)", timewindow.MsgPEP},
		},
		{
			name:  "eligible",
			v:     predict.Verdict{Outcome: predict.OutcomeEligible, Risk: risk.LevelLow, Predictor: "requirements"},
			wants: []string{"ELIGIBLE", "Low Risk", "requirements"},
		},
		{
			name:  "undecided",
			v:     predict.Verdict{Outcome: predict.OutcomeCannotDecide, Err: errors.New("service down")},
			wants: []string{"CANNOT EVALUATE", "service down"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertContains(t, r.Verdict(tt.v), tt.wants...)
		})
	}
}

func TestViolationsEmpty(t *testing.T) {
	assertContains(t, New(false).Violations(nil), "No time-window violations.")
}

func TestPrograms(t *testing.T) {
	out := New(false).Programs(catalogue.Default().Programs())
	assertContains(t, out, "btech", "B.Tech / TSM (4 Years)", "BTECH_AI, TSM", "law", "BBA_LLB")
}

func TestProgram(t *testing.T) {
	p, err := catalogue.Default().Program("bba")
	if err != nil {
		t.Fatal(err)
	}
	out := New(false).Program(p)
	assertContains(t, out, "BBA (3 Years)", "120 credits over 12 terms", "within GE (Total)", "1-6", "T12")
}

func TestStudentsAndHistory(t *testing.T) {
	r := New(false)
	assertContains(t, r.Students(nil), "No students yet")
	assertContains(t, r.History(nil), "No evaluations recorded.")

	out := r.Students([]store.Student{{ID: "abc", Name: "Asha", Program: "btech", CurrentTerm: 8}})
	assertContains(t, out, "abc", "Asha", "btech")

	out = r.Students([]store.Student{{ID: "def", Name: strings.Repeat("名", 15), Program: "law", CurrentTerm: 2}})
	if strings.ContainsRune(out, 0) {
		t.Fatalf("output contains NUL bytes:\n%q", out)
	}
	assertContains(t, out, strings.Repeat("名", 9)+"…")

	out = r.History([]store.EvaluationRecord{{
		Term: 8, EarnedTotal: 60, ExpectedByNow: 80, Ratio: 0.75,
		Status: "Attention Needed", Risk: "Medium", CreatedAt: time.Now(),
	}})
	assertContains(t, out, "0.75", "Attention Needed", "Medium")
}
