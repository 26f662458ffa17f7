package config

import (
	_ "embed"
)

//go:embed defaults/gems.yaml
var defaultGemsYAML []byte

// DefaultGemsConfig returns the default gems configuration.
func DefaultGemsConfig() GemsConfig {
	return GemsConfig{
		Board: BoardConfig{
			Rows:     8,
			Cols:     8,
			GemTypes: 6,
		},
		Scoring: ScoringConfig{
			BaseMatchPoints:   10,
			ComboBonusPerStep: 5,
			StripedThreshold:  4,
			BombThreshold:     5,
		},
		Generation: GenerationConfig{
			MaxAttempts:       10000,
			ReshuffleAttempts: 50,
			MaxRounds:         256,
		},
		Modes: map[string]ModeConfig{
			"classic": {Moves: 30},
			"timed":   {Seconds: 60},
			"endless": {},
			"zen":     {},
		},
		Pacing: PacingConfig{
			SwapFrames:      6,
			RoundFrames:     12,
			PopupFrames:     45,
			HintIdleSeconds: 5,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultGemsYAML
}
