package eligibility

import (
	"testing"

	"github.com/abhisek/credaudit/internal/catalogue"
)

func TestSummarize_Groups(t *testing.T) {
	p := btech(t)
	snap := Snapshot{CurrentTerm: 10, Earned: map[string]int{
		catalogue.CategoryCore:       70,
		catalogue.CategoryGETotal:    24,
		catalogue.CategoryHumanities: 8,
		catalogue.CategoryPEP:        12,
		catalogue.CategoryExecution:  3,
		catalogue.CategorySIP:        3,
		catalogue.CategoryShortIIP:   2,
		catalogue.CategoryRI:         1,
	}}
	b := Summarize(p, snap, 100)

	want := map[catalogue.Group]int{
		catalogue.GroupCore:         70,
		catalogue.GroupGeneralEd:    39, // GE 24 + PEP 12 + EE 3; humanities only via GE
		catalogue.GroupExperiential: 6,
	}
	if len(b.Groups) != len(want) {
		t.Fatalf("got %d groups, want %d", len(b.Groups), len(want))
	}
	for _, g := range b.Groups {
		if g.Earned != want[g.Group] {
			t.Errorf("group %q earned = %d, want %d", g.Group, g.Earned, want[g.Group])
		}
	}
	if b.Remaining != 60 {
		t.Errorf("remaining = %d, want 60", b.Remaining)
	}
}

func TestSummarize_RemainingFloorsAtZero(t *testing.T) {
	p := btech(t)
	b := Summarize(p, Snapshot{CurrentTerm: 16}, 200)
	if b.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", b.Remaining)
	}
}
