package config

import "math"

// DifficultyManager derives per-level parameters for endless mode.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty (0.0 to 1.0) for the zero-based level index.
func (d *DifficultyManager) Level(levelIndex int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}
	progress := clampF(float64(levelIndex)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// MaxXP returns the XP target for the level.
func (d *DifficultyManager) MaxXP(baseXP, levelIndex int) int {
	level := d.Level(levelIndex)
	return int(math.Round(float64(baseXP) * (1.0 + level*d.cfg.Scaling.XPMultiplier)))
}

// DeckSize returns the deck size for the level. Never below 1.
func (d *DifficultyManager) DeckSize(baseSize, levelIndex int) int {
	level := d.Level(levelIndex)
	reduction := int(level * float64(d.cfg.Scaling.DeckReduction))
	return max(1, baseSize-reduction)
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
