// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
)

// SlicesConfig contains all configuration for the slice puzzle.
type SlicesConfig struct {
	Board       BoardConfig      `yaml:"board"`
	Pieces      PiecesConfig     `yaml:"pieces"`
	Deck        DeckConfig       `yaml:"deck"`
	Progression ProgressionRules `yaml:"progression"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the grid size.
type BoardConfig struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
}

// PiecesConfig defines piece composition limits.
type PiecesConfig struct {
	MaxSlices int `yaml:"max_slices"` // Capacity of every piece
	MaxColors int `yaml:"max_colors"` // Colors in a freshly created piece
}

// DeckConfig defines the offered piece queue.
type DeckConfig struct {
	Size int `yaml:"size"`
}

// ProgressionRules defines XP and score rewards.
type ProgressionRules struct {
	XPPerPiece    int `yaml:"xp_per_piece"`
	MaxXP         int `yaml:"max_xp"`
	ScorePerPiece int `yaml:"score_per_piece"`
}

// DifficultyConfig defines how later levels in endless mode get harder.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over levels.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // Level index at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	XPMultiplier  float64 `yaml:"xp_multiplier"`  // Added to the XP target multiplier at max difficulty
	DeckReduction int     `yaml:"deck_reduction"` // Deck slots removed at max difficulty
}

// Validate checks for values the game cannot run with.
func (c SlicesConfig) Validate() error {
	var errs []error
	if c.Board.Rows < 1 || c.Board.Columns < 1 {
		errs = append(errs, fmt.Errorf("board must be at least 1x1, got %dx%d", c.Board.Rows, c.Board.Columns))
	}
	if c.Board.Columns >= 100 {
		errs = append(errs, fmt.Errorf("board columns must be below 100, got %d", c.Board.Columns))
	}
	if c.Pieces.MaxSlices < 2 {
		errs = append(errs, fmt.Errorf("pieces.max_slices must be at least 2, got %d", c.Pieces.MaxSlices))
	}
	if c.Pieces.MaxColors < 1 || c.Pieces.MaxColors > 6 {
		errs = append(errs, fmt.Errorf("pieces.max_colors must be in [1,6], got %d", c.Pieces.MaxColors))
	}
	if c.Deck.Size < 1 {
		errs = append(errs, fmt.Errorf("deck.size must be at least 1, got %d", c.Deck.Size))
	}
	if c.Progression.XPPerPiece < 0 || c.Progression.MaxXP < 1 {
		errs = append(errs, fmt.Errorf("progression needs xp_per_piece >= 0 and max_xp >= 1"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid slices config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
