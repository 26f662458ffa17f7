// Package autoplay plays gem sessions without a terminal. It backs the
// sim command and soak tests.
package autoplay

import (
	"fmt"

	"github.com/vovakirdan/gem-arcade/internal/match3"
	"github.com/vovakirdan/gem-arcade/internal/session"
)

// Strategy names a move picking rule.
type Strategy string

const (
	// StrategyFirst plays the first legal move in scan order.
	StrategyFirst Strategy = "first"
	// StrategyGreedy plays the legal move that matches the most gems at once.
	StrategyGreedy Strategy = "greedy"
)

// DefaultMaxMoves ends sessions without a budget.
const DefaultMaxMoves = 200

// maxStuck is how many shuffles in a row are tried on a board with no move.
const maxStuck = 3

// ParseStrategy validates a strategy name. An empty name selects greedy.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(name); s {
	case "":
		return StrategyGreedy, nil
	case StrategyFirst, StrategyGreedy:
		return s, nil
	default:
		return "", fmt.Errorf("autoplay: unknown strategy %q (want first or greedy)", name)
	}
}

// Choose picks a move on g, or reports false when g has none.
func Choose(g *match3.Grid, s Strategy) (match3.Move, bool) {
	if s != StrategyGreedy {
		return match3.FindLegalMove(g)
	}

	var best match3.Move
	bestCount := 0
	for _, m := range match3.LegalMoves(g) {
		trial := g.Clone()
		trial.Swap(m.From, m.To)
		if n := match3.FindMatches(trial).Count(); n > bestCount {
			best, bestCount = m, n
		}
	}
	return best, bestCount > 0
}

// Options controls Play.
type Options struct {
	Strategy Strategy
	// MaxMoves ends a session without a move or time budget after this many
	// moves. Zero selects DefaultMaxMoves.
	MaxMoves int
}

// Play drives a started session to its end. Time-limited modes spend one
// second per move. The session is ended explicitly when it runs out of
// MaxMoves or stays stuck after reshuffling.
func Play(s *session.Session, opts Options) session.Result {
	maxMoves := opts.MaxMoves
	if maxMoves <= 0 {
		maxMoves = DefaultMaxMoves
	}

	stuck := 0
	for !s.IsOver() {
		rules := s.Rules()
		if !rules.Bounded() && s.Stats().MovesMade >= maxMoves {
			break
		}

		m, ok := Choose(s.Board(), opts.Strategy)
		if !ok {
			stuck++
			if stuck > maxStuck {
				break
			}
			s.Shuffle()
			continue
		}
		stuck = 0

		if rules.TimeLimited() && !s.Tick() {
			break
		}
		s.AttemptSwap(m.From, m.To)
	}
	return s.End()
}
