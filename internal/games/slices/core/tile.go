package core

import "fmt"

// TileID is the numeric identity of a board cell: row*ColumnScale + column.
type TileID int

// TileIDOf derives the tile id for a coordinate.
func TileIDOf(row, column int) TileID {
	return TileID(row*ColumnScale + column)
}

// Split returns the coordinate encoded in the id.
func (id TileID) Split() (row, column int) {
	return int(id) / ColumnScale, int(id) % ColumnScale
}

// Tile is one board cell and its occupant, if any.
type Tile struct {
	Row    int
	Column int
	Piece  PieceID
}

// ID returns the tile id.
func (t Tile) ID() TileID {
	return TileIDOf(t.Row, t.Column)
}

// Occupied returns true if a piece sits on the tile.
func (t Tile) Occupied() bool {
	return t.Piece.IsValid()
}

// String returns a string representation of the tile.
func (t Tile) String() string {
	return fmt.Sprintf("(%d,%d)", t.Row, t.Column)
}
