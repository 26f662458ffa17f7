package match3

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Rand is the random source used for refills and shuffles.
// *math/rand/v2.Rand satisfies it; tests substitute scripted sources.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a seeded PCG source.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Scoring holds the point and promotion rules of a cascade.
type Scoring struct {
	BaseMatchPoints   int
	ComboBonusPerStep int
	StripedThreshold  int
	BombThreshold     int
}

// DefaultScoring returns 10 points per gem, 5 per combo step, stripes at 4, bombs at 5+.
func DefaultScoring() Scoring {
	return Scoring{
		BaseMatchPoints:   10,
		ComboBonusPerStep: 5,
		StripedThreshold:  4,
		BombThreshold:     5,
	}
}

// RoundScore returns the points of a round that matched count cells at combo depth.
func (s Scoring) RoundScore(count, depth int) int {
	score := count * s.BaseMatchPoints
	if depth > 1 {
		score += (depth - 1) * s.ComboBonusPerStep
	}
	return score
}

// Params describes a board and its rules.
type Params struct {
	Rows     int
	Cols     int
	GemTypes int
	Scoring  Scoring

	MaxGenerateAttempts int // Fresh-board retries before accepting a best-effort board
	ReshuffleAttempts   int // Permutation retries before accepting the last one
	MaxRounds           int // Upper bound on cascade rounds per player action
}

// DefaultParams returns the classic 8x8 six-gem board.
func DefaultParams() Params {
	return Params{
		Rows:                8,
		Cols:                8,
		GemTypes:            6,
		Scoring:             DefaultScoring(),
		MaxGenerateAttempts: 10000,
		ReshuffleAttempts:   50,
		MaxRounds:           256,
	}
}

// ErrInvalidParams is wrapped by every Params.Validate failure.
var ErrInvalidParams = errors.New("match3: invalid params")

// Validate checks that a playable board can exist under p.
func (p Params) Validate() error {
	switch {
	case p.Rows < MinRun || p.Cols < MinRun:
		return fmt.Errorf("%w: board %dx%d is smaller than %dx%d", ErrInvalidParams, p.Rows, p.Cols, MinRun, MinRun)
	case p.GemTypes < MinRun:
		return fmt.Errorf("%w: need at least %d gem types, got %d", ErrInvalidParams, MinRun, p.GemTypes)
	case p.Scoring.BaseMatchPoints < 0 || p.Scoring.ComboBonusPerStep < 0:
		return fmt.Errorf("%w: negative scoring values", ErrInvalidParams)
	case p.Scoring.StripedThreshold <= MinRun:
		return fmt.Errorf("%w: striped threshold %d must exceed %d", ErrInvalidParams, p.Scoring.StripedThreshold, MinRun)
	case p.Scoring.BombThreshold <= p.Scoring.StripedThreshold:
		return fmt.Errorf("%w: bomb threshold %d must exceed striped threshold %d",
			ErrInvalidParams, p.Scoring.BombThreshold, p.Scoring.StripedThreshold)
	case p.MaxGenerateAttempts <= 0 || p.ReshuffleAttempts <= 0 || p.MaxRounds <= 0:
		return fmt.Errorf("%w: attempt and round limits must be positive", ErrInvalidParams)
	}
	return nil
}

func (p Params) mustValidate() {
	if err := p.Validate(); err != nil {
		panic(err.Error())
	}
}
