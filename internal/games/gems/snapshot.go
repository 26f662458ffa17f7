package gems

import "github.com/vovakirdan/gem-arcade/internal/match3"

// StateType is the coarse state of the game.
type StateType string

const (
	StatePlaying     StateType = "playing"
	StateAnimating   StateType = "animating"
	StatePaused      StateType = "paused"
	StateGameOver    StateType = "game_over"
	StatePausedSmall StateType = "paused_small_window"
)

// Snapshot captures the game state for determinism tests and debugging.
type Snapshot struct {
	Tick           uint64
	Mode           string
	Score          int
	MovesRemaining int
	TimeRemaining  int
	MaxCombo       int
	TotalMatched   int
	Cursor         match3.Coord
	Selected       *match3.Coord
	Hint           *match3.Move
	Board          [][]int // Gem types of the live board
	Achievements   int     // Unlocked so far
	State          StateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.play.active():
		state = StateAnimating
	case g.sess.IsOver():
		state = StateGameOver
	}

	stats := g.sess.Stats()
	snap := Snapshot{
		Tick:           g.tick,
		Mode:           string(g.mode),
		Score:          stats.Score,
		MovesRemaining: stats.MovesRemaining,
		TimeRemaining:  stats.TimeRemaining,
		MaxCombo:       stats.MaxCombo,
		TotalMatched:   stats.TotalMatched,
		Cursor:         g.cursor,
		Board:          g.sess.Board().Types(),
		Achievements:   g.tracker.Count(),
		State:          state,
	}
	if c, ok := g.sess.Selection(); ok {
		snap.Selected = &c
	}
	if g.hint != nil {
		h := *g.hint
		snap.Hint = &h
	}
	return snap
}
