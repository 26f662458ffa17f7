package achievements

import (
	"testing"

	"github.com/vovakirdan/gem-arcade/internal/session"
)

func ids(as []Achievement) []ID {
	out := make([]ID, len(as))
	for i, a := range as {
		out[i] = a.ID
	}
	return out
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		stats session.Stats
		want  []ID
	}{
		{"nothing yet", session.Stats{}, nil},
		{"first match", session.Stats{TotalMatched: 3, Score: 30}, []ID{FirstMatch}},
		{"combo and special", session.Stats{TotalMatched: 12, MaxCombo: 5, SpecialsCreated: 1}, []ID{FirstMatch, Combo5, SpecialGem}},
		{"everything", session.Stats{TotalMatched: 150, MaxCombo: 11, SpecialsCreated: 4, Score: 6000},
			[]ID{FirstMatch, Combo5, Combo10, Score1000, Score5000, SpecialGem, Gems100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(NewTracker().Evaluate(tt.stats))
			if len(got) != len(tt.want) {
				t.Fatalf("Evaluate() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Evaluate() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestEvaluateUnlocksOnce(t *testing.T) {
	tr := NewTracker()
	if got := tr.Evaluate(session.Stats{TotalMatched: 3}); len(got) != 1 {
		t.Fatalf("Expected 1 unlock, got %v", ids(got))
	}
	if got := tr.Evaluate(session.Stats{TotalMatched: 9}); len(got) != 0 {
		t.Errorf("Expected no repeat unlocks, got %v", ids(got))
	}
	if !tr.Unlocked(FirstMatch) || tr.Unlocked(Gems100) || tr.Count() != 1 {
		t.Error("unexpected tracker state")
	}
}

func TestAllIsACopy(t *testing.T) {
	all := All()
	if len(all) != 7 {
		t.Fatalf("Expected 7 achievements, got %d", len(all))
	}
	all[0].Name = "changed"
	if All()[0].Name != "First Match" {
		t.Error("All() exposed the catalog")
	}
}
