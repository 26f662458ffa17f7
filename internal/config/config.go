// Package config provides YAML-based configuration loading, difficulty presets
// and environment overrides for the gem arcade.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/gem-arcade/internal/match3"
	"github.com/vovakirdan/gem-arcade/internal/session"
)

// GemsConfig contains all configuration for the gems game.
type GemsConfig struct {
	Board      BoardConfig           `yaml:"board"`
	Scoring    ScoringConfig         `yaml:"scoring"`
	Generation GenerationConfig      `yaml:"generation"`
	Modes      map[string]ModeConfig `yaml:"modes"`
	Pacing     PacingConfig          `yaml:"pacing"`
}

// BoardConfig defines the board dimensions.
type BoardConfig struct {
	Rows     int `yaml:"rows"`
	Cols     int `yaml:"cols"`
	GemTypes int `yaml:"gem_types"`
}

// ScoringConfig defines points and special gem thresholds.
type ScoringConfig struct {
	BaseMatchPoints   int `yaml:"base_match_points"`
	ComboBonusPerStep int `yaml:"combo_bonus_per_step"`
	StripedThreshold  int `yaml:"striped_threshold"` // Exact run length that makes a striped gem
	BombThreshold     int `yaml:"bomb_threshold"`    // Minimum run length that makes a bomb
}

// GenerationConfig bounds the retry loops.
type GenerationConfig struct {
	MaxAttempts       int `yaml:"max_attempts"`
	ReshuffleAttempts int `yaml:"reshuffle_attempts"`
	MaxRounds         int `yaml:"max_rounds"`
}

// ModeConfig is a mode budget. Zero means unlimited.
type ModeConfig struct {
	Moves   int `yaml:"moves"`
	Seconds int `yaml:"seconds"`
}

// PacingConfig controls presentation timing only; game logic never waits on it.
type PacingConfig struct {
	SwapFrames      int `yaml:"swap_frames"`
	RoundFrames     int `yaml:"round_frames"`
	PopupFrames     int `yaml:"popup_frames"`
	HintIdleSeconds int `yaml:"hint_idle_seconds"`
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Validate checks that the config describes a playable board.
func (c GemsConfig) Validate() error {
	if err := c.ToParams().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if len(c.Modes) == 0 {
		return fmt.Errorf("%w: no modes defined", ErrInvalid)
	}
	for name, m := range c.Modes {
		if m.Moves < 0 || m.Seconds < 0 {
			return fmt.Errorf("%w: mode %s has a negative budget", ErrInvalid, name)
		}
	}
	p := c.Pacing
	if p.SwapFrames < 0 || p.RoundFrames < 0 || p.PopupFrames < 0 || p.HintIdleSeconds < 0 {
		return fmt.Errorf("%w: pacing values must not be negative", ErrInvalid)
	}
	return nil
}

// ToParams converts the board, scoring and generation sections.
func (c GemsConfig) ToParams() match3.Params {
	return match3.Params{
		Rows:     c.Board.Rows,
		Cols:     c.Board.Cols,
		GemTypes: c.Board.GemTypes,
		Scoring: match3.Scoring{
			BaseMatchPoints:   c.Scoring.BaseMatchPoints,
			ComboBonusPerStep: c.Scoring.ComboBonusPerStep,
			StripedThreshold:  c.Scoring.StripedThreshold,
			BombThreshold:     c.Scoring.BombThreshold,
		},
		MaxGenerateAttempts: c.Generation.MaxAttempts,
		ReshuffleAttempts:   c.Generation.ReshuffleAttempts,
		MaxRounds:           c.Generation.MaxRounds,
	}
}

// ToSessionConfig converts the whole config for session.New.
func (c GemsConfig) ToSessionConfig() session.Config {
	modes := make(map[session.Mode]session.ModeRules, len(c.Modes))
	for name, m := range c.Modes {
		modes[session.Mode(name)] = session.ModeRules{
			Moves:   budget(m.Moves),
			Seconds: budget(m.Seconds),
		}
	}
	return session.Config{Params: c.ToParams(), Modes: modes}
}

func budget(v int) int {
	if v <= 0 {
		return session.Unlimited
	}
	return v
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. An empty name selects normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// ApplyGemsPreset adjusts gem variety and the classic and timed budgets.
// More gem types means fewer accidental matches, so hard adds types.
func ApplyGemsPreset(cfg *GemsConfig, preset DifficultyPreset) {
	var gemTypes, moves, seconds int
	switch preset {
	case DifficultyEasy:
		gemTypes, moves, seconds = 5, 40, 90
	case DifficultyHard:
		gemTypes, moves, seconds = 7, 20, 45
	default:
		return
	}

	cfg.Board.GemTypes = gemTypes
	if cfg.Modes == nil {
		cfg.Modes = make(map[string]ModeConfig)
	}
	cfg.Modes[string(session.ModeClassic)] = ModeConfig{Moves: moves}
	cfg.Modes[string(session.ModeTimed)] = ModeConfig{Seconds: seconds}
}
