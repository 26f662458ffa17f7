package autoplay

import (
	"testing"

	"github.com/vovakirdan/gem-arcade/internal/match3"
	"github.com/vovakirdan/gem-arcade/internal/session"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name    string
		want    Strategy
		wantErr bool
	}{
		{"", StrategyGreedy, false},
		{"first", StrategyFirst, false},
		{"greedy", StrategyGreedy, false},
		{"random", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.name)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseStrategy(%q) = %q, %v", tt.name, got, err)
		}
	}
}

// choiceBoard has a three-gem move in the top row and a five-gem move lower down.
func choiceBoard() *match3.Grid {
	return match3.FromTypes([][]int{
		{0, 0, 1, 0, 2},
		{4, 5, 3, 5, 4},
		{3, 3, 4, 3, 3},
		{5, 4, 5, 4, 5},
	})
}

func TestChoose(t *testing.T) {
	tests := []struct {
		strategy Strategy
		want     match3.Move
	}{
		{StrategyFirst, match3.Move{From: match3.At(0, 2), To: match3.At(0, 3)}},
		{StrategyGreedy, match3.Move{From: match3.At(1, 2), To: match3.At(2, 2)}},
	}
	for _, tt := range tests {
		g := choiceBoard()
		got, ok := Choose(g, tt.strategy)
		if !ok || got != tt.want {
			t.Errorf("%s: Choose() = %v, %v; want %v", tt.strategy, got, ok, tt.want)
		}
		if !g.Equal(choiceBoard()) {
			t.Errorf("%s: Choose() modified the board", tt.strategy)
		}
	}
}

func TestChooseDeadBoard(t *testing.T) {
	dead := match3.FromTypes([][]int{
		{0, 1, 2},
		{1, 2, 0},
		{2, 0, 1},
	})
	for _, s := range []Strategy{StrategyFirst, StrategyGreedy} {
		if _, ok := Choose(dead, s); ok {
			t.Errorf("%s: dead board should have no move", s)
		}
	}
}

func startSession(t *testing.T, mode session.Mode, rules session.ModeRules, seed int64) *session.Session {
	t.Helper()
	cfg := session.DefaultConfig()
	cfg.Modes[mode] = rules
	s, err := session.New(cfg, match3.NewRand(seed))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := s.Start(mode); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return s
}

func TestPlayModes(t *testing.T) {
	tests := []struct {
		name      string
		mode      session.Mode
		rules     session.ModeRules
		maxMoves  int
		wantMoves int
	}{
		{"classic", session.ModeClassic, session.ModeRules{Moves: 5, Seconds: session.Unlimited}, 0, 5},
		// The third second runs out before the third swap
		{"timed", session.ModeTimed, session.ModeRules{Moves: session.Unlimited, Seconds: 3}, 0, 2},
		{"endless", session.ModeEndless, session.ModeRules{Moves: session.Unlimited, Seconds: session.Unlimited}, 7, 7},
	}

	for _, tt := range tests {
		for _, strategy := range []Strategy{StrategyFirst, StrategyGreedy} {
			t.Run(tt.name+"/"+string(strategy), func(t *testing.T) {
				s := startSession(t, tt.mode, tt.rules, 11)
				res := Play(s, Options{Strategy: strategy, MaxMoves: tt.maxMoves})

				if !s.IsOver() {
					t.Fatal("Play should leave the session over")
				}
				if res.Stats.MovesMade != tt.wantMoves {
					t.Errorf("MovesMade = %d, want %d", res.Stats.MovesMade, tt.wantMoves)
				}
				if res.FinalScore <= 0 || res.Mode != tt.mode {
					t.Errorf("unexpected result %+v", res)
				}
			})
		}
	}
}

func TestPlayDeterministic(t *testing.T) {
	rules := session.ModeRules{Moves: 10, Seconds: session.Unlimited}
	a := Play(startSession(t, session.ModeClassic, rules, 99), Options{Strategy: StrategyGreedy})
	b := Play(startSession(t, session.ModeClassic, rules, 99), Options{Strategy: StrategyGreedy})
	if a.FinalScore != b.FinalScore || a.Stats != b.Stats {
		t.Errorf("same seed should replay the same game: %+v vs %+v", a, b)
	}
}
