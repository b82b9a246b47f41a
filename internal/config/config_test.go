package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg SlicesConfig
	if err := yaml.Unmarshal(GetDefaultYAML("slices"), &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultSlicesConfig() {
		t.Errorf("embedded defaults differ from DefaultSlicesConfig:\n%+v\n%+v", cfg, DefaultSlicesConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults are invalid: %v", err)
	}
}

func TestLoadSlicesCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slices.yaml")
	data := "board:\n  rows: 3\n  columns: 5\ndeck:\n  size: 2\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSlices(path)
	if err != nil {
		t.Fatalf("LoadSlices failed: %v", err)
	}
	if cfg.Board.Rows != 3 || cfg.Board.Columns != 5 || cfg.Deck.Size != 2 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Unset keys keep their defaults
	if cfg.Pieces.MaxSlices != 6 || cfg.Progression.MaxXP != 100 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadSlicesErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSlices(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("pieces:\n  max_slices: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadSlices(bad)
	if err == nil || !strings.Contains(err.Error(), "max_slices") {
		t.Errorf("invalid config error = %v", err)
	}
}

func TestApplySlicesPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		deck    int
		maxXP   int
		enabled bool
	}{
		{DifficultyEasy, 4, 80, true},
		{DifficultyNormal, 3, 100, true},
		{DifficultyHard, 2, 150, true},
		{DifficultyFixed, 3, 100, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultSlicesConfig()
			ApplySlicesPreset(&cfg, tt.preset)
			if cfg.Deck.Size != tt.deck || cfg.Progression.MaxXP != tt.maxXP || cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("preset %s: deck %d, max xp %d, enabled %v", tt.preset, cfg.Deck.Size, cfg.Progression.MaxXP, cfg.Difficulty.Enabled)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("unknown preset accepted")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultSlicesConfig().Difficulty
	d := NewDifficultyManager(cfg)

	if got := d.MaxXP(100, 0); got != 100 {
		t.Errorf("MaxXP at level 0 = %d, want 100", got)
	}
	if got := d.MaxXP(100, 10); got != 200 {
		t.Errorf("MaxXP at max level = %d, want 200", got)
	}
	if got := d.MaxXP(100, 50); got != 200 {
		t.Errorf("MaxXP past max level = %d, want 200", got)
	}
	if got := d.DeckSize(3, 10); got != 2 {
		t.Errorf("DeckSize at max level = %d, want 2", got)
	}
	if got := d.DeckSize(1, 10); got != 1 {
		t.Errorf("DeckSize should never drop below 1, got %d", got)
	}

	cfg.Enabled = false
	cfg.InitialLevel = 0.5
	fixed := NewDifficultyManager(cfg)
	if fixed.Level(0) != fixed.Level(100) {
		t.Error("disabled progression should not depend on level")
	}
}
