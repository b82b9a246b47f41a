package core

import "fmt"

// ColumnScale is the multiplier used to derive tile ids from coordinates.
// It must exceed the maximum column count.
const ColumnScale = 100

// Rules holds the tunable constants of a session.
type Rules struct {
	Rows              int `yaml:"rows"`                 // Board rows
	Columns           int `yaml:"columns"`              // Board columns
	MaxSlices         int `yaml:"max_slices"`           // Slice capacity of a piece
	DeckSize          int `yaml:"deck_size"`            // Pieces offered to the player at once
	MaxColorsPerPiece int `yaml:"max_colors_per_piece"` // Upper bound on distinct colors in a generated piece
	XPPerPiece        int `yaml:"xp_per_piece"`         // XP awarded for each completed piece
	MaxXP             int `yaml:"max_xp"`               // XP needed to complete the level
}

// DefaultRules returns the reference rule set: a 6x4 board, 6-slice pieces,
// a deck of 3 and at most 3 colors per generated piece.
func DefaultRules() Rules {
	return Rules{
		Rows:              6,
		Columns:           4,
		MaxSlices:         6,
		DeckSize:          3,
		MaxColorsPerPiece: 3,
		XPPerPiece:        10,
		MaxXP:             100,
	}
}

// Cells returns the number of tiles on the board.
func (r Rules) Cells() int {
	return r.Rows * r.Columns
}

// Validate checks the rules for values the simulation cannot work with.
func (r Rules) Validate() error {
	switch {
	case r.Rows < 1 || r.Columns < 1:
		return fmt.Errorf("rules: board must be at least 1x1, got %dx%d", r.Rows, r.Columns)
	case r.Columns >= ColumnScale:
		return fmt.Errorf("rules: columns must be below %d, got %d", ColumnScale, r.Columns)
	case r.MaxSlices < 2:
		return fmt.Errorf("rules: max slices must be at least 2, got %d", r.MaxSlices)
	case r.DeckSize < 1:
		return fmt.Errorf("rules: deck size must be at least 1, got %d", r.DeckSize)
	case r.MaxColorsPerPiece < 1 || r.MaxColorsPerPiece > int(ColorCount):
		return fmt.Errorf("rules: max colors per piece must be in [1,%d], got %d", ColorCount, r.MaxColorsPerPiece)
	case r.XPPerPiece < 0 || r.MaxXP < 0:
		return fmt.Errorf("rules: xp values must not be negative")
	}
	return nil
}
