// Package achievements tracks one-shot milestones reached during play.
package achievements

import "github.com/vovakirdan/gem-arcade/internal/session"

// ID identifies an achievement.
type ID string

const (
	FirstMatch ID = "firstMatch"
	Combo5     ID = "combo5"
	Combo10    ID = "combo10"
	Score1000  ID = "score1000"
	Score5000  ID = "score5000"
	SpecialGem ID = "specialGem"
	Gems100    ID = "gems100"
)

// Achievement is a milestone and the condition that unlocks it.
type Achievement struct {
	ID          ID
	Name        string
	Description string
	reached     func(s session.Stats) bool
}

var catalog = []Achievement{
	{FirstMatch, "First Match", "Match your first gems!", func(s session.Stats) bool { return s.TotalMatched > 0 }},
	{Combo5, "Combo Master", "Get a 5x combo!", func(s session.Stats) bool { return s.MaxCombo >= 5 }},
	{Combo10, "Combo Legend", "Get a 10x combo!", func(s session.Stats) bool { return s.MaxCombo >= 10 }},
	{Score1000, "High Scorer", "Reach 1000 points!", func(s session.Stats) bool { return s.Score >= 1000 }},
	{Score5000, "Score Master", "Reach 5000 points!", func(s session.Stats) bool { return s.Score >= 5000 }},
	{SpecialGem, "Special Discovery", "Create a special gem!", func(s session.Stats) bool { return s.SpecialsCreated > 0 }},
	{Gems100, "Gem Collector", "Match 100 gems!", func(s session.Stats) bool { return s.TotalMatched >= 100 }},
}

// All returns every achievement in display order.
func All() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// Tracker remembers which achievements were unlocked.
// Unlocks persist across games played with the same tracker.
type Tracker struct {
	unlocked map[ID]bool
}

// NewTracker returns a tracker with nothing unlocked.
func NewTracker() *Tracker {
	return &Tracker{unlocked: make(map[ID]bool)}
}

// Evaluate unlocks every achievement stats now satisfies and returns the
// newly unlocked ones in catalog order.
func (t *Tracker) Evaluate(stats session.Stats) []Achievement {
	var fresh []Achievement
	for _, a := range catalog {
		if t.unlocked[a.ID] || !a.reached(stats) {
			continue
		}
		t.unlocked[a.ID] = true
		fresh = append(fresh, a)
	}
	return fresh
}

// Unlocked reports whether id has been reached.
func (t *Tracker) Unlocked(id ID) bool {
	return t.unlocked[id]
}

// Count returns the number of unlocked achievements.
func (t *Tracker) Count() int {
	return len(t.unlocked)
}
