package match3

import (
	"errors"
	"sort"
	"testing"
)

func TestGenerateProducesPlayableBoards(t *testing.T) {
	p := DefaultParams()
	for seed := int64(1); seed <= 50; seed++ {
		g, rep := NewGenerator(p, NewRand(seed)).Generate()
		if !rep.Playable {
			t.Fatalf("seed %d: generator gave up after %d attempts", seed, rep.Attempts)
		}
		if !FindMatches(g).Empty() {
			t.Errorf("seed %d: board has a standing match:\n%s", seed, g)
		}
		if !HasLegalMove(g) {
			t.Errorf("seed %d: board has no legal move", seed)
		}
		g.ForEach(func(c Coord, cell Cell) {
			if cell.Type < 0 || cell.Type >= p.GemTypes || cell.Special != SpecialNone {
				t.Errorf("seed %d: bad cell %+v at %v", seed, cell, c)
			}
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, _ := NewGenerator(DefaultParams(), NewRand(7)).Generate()
	b, _ := NewGenerator(DefaultParams(), NewRand(7)).Generate()
	if !a.Equal(b) {
		t.Error("same seed produced different boards")
	}
}

func TestGenerateExhaustion(t *testing.T) {
	p := testParams(3, 3, 3)
	p.MaxGenerateAttempts = 5
	g, rep := NewGenerator(p, constRand(0)).Generate()
	if rep.Playable {
		t.Error("a uniform board should never be playable")
	}
	if rep.Attempts != 5 {
		t.Errorf("Attempts = %d, want 5", rep.Attempts)
	}
	if g.EmptyCount() != 0 {
		t.Error("best-effort board must still be fully populated")
	}
}

func sortedTypes(g *Grid) []int {
	var out []int
	g.ForEach(func(_ Coord, cell Cell) {
		out = append(out, cell.Type)
	})
	sort.Ints(out)
	return out
}

func TestReshufflePreservesTypes(t *testing.T) {
	src := deadBoard()
	src.Set(At(0, 0), Cell{Type: 3, Special: SpecialBomb})
	before := src.Clone()

	out, rep := NewGenerator(testParams(4, 4, 4), NewRand(3)).Reshuffle(src)
	if !src.Equal(before) {
		t.Error("Reshuffle() modified its input")
	}
	got, want := sortedTypes(out), sortedTypes(src)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("type multiset changed: got %v, want %v", got, want)
		}
	}
	out.ForEach(func(c Coord, cell Cell) {
		if cell.Special != SpecialNone {
			t.Errorf("special survived reshuffle at %v", c)
		}
	})
	if rep.Playable && !IsPlayable(out) {
		t.Error("report claims playable for an unplayable board")
	}
}

func TestReshuffleUniformBoardNeverPlayable(t *testing.T) {
	p := testParams(3, 3, 3)
	p.ReshuffleAttempts = 6
	src := FromTypes([][]int{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	})
	_, rep := NewGenerator(p, NewRand(1)).Reshuffle(src)
	if rep.Playable || rep.Attempts != 6 {
		t.Errorf("Expected 6 failed attempts, got %+v", rep)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Params)
		ok     bool
	}{
		{"defaults", func(p *Params) {}, true},
		{"too few rows", func(p *Params) { p.Rows = 2 }, false},
		{"too few gem types", func(p *Params) { p.GemTypes = 2 }, false},
		{"striped at three", func(p *Params) { p.Scoring.StripedThreshold = 3 }, false},
		{"bomb not above striped", func(p *Params) { p.Scoring.BombThreshold = 4 }, false},
		{"zero reshuffle attempts", func(p *Params) { p.ReshuffleAttempts = 0 }, false},
		{"zero max rounds", func(p *Params) { p.MaxRounds = 0 }, false},
		{"negative base points", func(p *Params) { p.Scoring.BaseMatchPoints = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			err := p.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() failed: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidParams) {
				t.Errorf("Expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestNewResolverPanicsOnInvalidParams(t *testing.T) {
	p := DefaultParams()
	p.Rows = 1
	mustPanic(t, "resolver", func() { NewResolver(p, constRand(0)) })
	mustPanic(t, "generator", func() { NewGenerator(p, constRand(0)) })
}
