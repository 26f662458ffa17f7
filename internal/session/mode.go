package session

import (
	"errors"
	"fmt"
	"sort"
)

// Unlimited marks a budget that never runs out.
const Unlimited = -1

// Mode names a rule set.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeTimed   Mode = "timed"
	ModeEndless Mode = "endless"
	ModeZen     Mode = "zen"
)

// ModeRules is the budget a mode grants. A session ends when a bounded
// budget reaches zero.
type ModeRules struct {
	Moves   int // Unlimited, or the number of accepted swaps allowed
	Seconds int // Unlimited, or the countdown length in ticks
}

// MoveLimited reports whether accepted swaps consume the budget.
func (r ModeRules) MoveLimited() bool {
	return r.Moves != Unlimited
}

// TimeLimited reports whether Tick counts down.
func (r ModeRules) TimeLimited() bool {
	return r.Seconds != Unlimited
}

// Bounded reports whether the mode can end on its own.
func (r ModeRules) Bounded() bool {
	return r.MoveLimited() || r.TimeLimited()
}

// DefaultModes returns the four built-in modes.
func DefaultModes() map[Mode]ModeRules {
	return map[Mode]ModeRules{
		ModeClassic: {Moves: 30, Seconds: Unlimited},
		ModeTimed:   {Moves: Unlimited, Seconds: 60},
		ModeEndless: {Moves: Unlimited, Seconds: Unlimited},
		ModeZen:     {Moves: Unlimited, Seconds: Unlimited},
	}
}

// ErrUnknownMode is returned by Start for modes missing from the config.
var ErrUnknownMode = errors.New("session: unknown mode")

func validateRules(m Mode, r ModeRules) error {
	if r.Moves != Unlimited && r.Moves <= 0 {
		return fmt.Errorf("session: mode %s: moves must be positive or unlimited, got %d", m, r.Moves)
	}
	if r.Seconds != Unlimited && r.Seconds <= 0 {
		return fmt.Errorf("session: mode %s: seconds must be positive or unlimited, got %d", m, r.Seconds)
	}
	return nil
}

// SortedModes returns the configured mode names in a stable order,
// built-in modes first.
func SortedModes(modes map[Mode]ModeRules) []Mode {
	rank := map[Mode]int{ModeClassic: 0, ModeTimed: 1, ModeEndless: 2, ModeZen: 3}
	out := make([]Mode, 0, len(modes))
	for m := range modes {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iok := rank[out[i]]
		rj, jok := rank[out[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return out[i] < out[j]
		}
	})
	return out
}
