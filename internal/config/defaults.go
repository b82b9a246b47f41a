package config

import (
	_ "embed"
)

//go:embed defaults/slices.yaml
var defaultSlicesYAML []byte

// DefaultSlicesConfig returns the hardcoded configuration used when no YAML
// source can be read.
func DefaultSlicesConfig() SlicesConfig {
	return SlicesConfig{
		Board: BoardConfig{
			Rows:    6,
			Columns: 4,
		},
		Pieces: PiecesConfig{
			MaxSlices: 6,
			MaxColors: 3,
		},
		Deck: DeckConfig{
			Size: 3,
		},
		Progression: ProgressionRules{
			XPPerPiece:    10,
			MaxXP:         100,
			ScorePerPiece: 50,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				XPMultiplier:  1.0,
				DeckReduction: 1,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "slices", "slices_endless":
		return defaultSlicesYAML
	default:
		return nil
	}
}
