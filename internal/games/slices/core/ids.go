package core

import "strconv"

// PieceID uniquely identifies a piece for the lifetime of a session.
type PieceID uint64

// InvalidPiece marks a tile with no occupant.
const InvalidPiece PieceID = 0

// IsValid returns true if the id refers to a piece.
func (id PieceID) IsValid() bool {
	return id != InvalidPiece
}

// String returns the decimal form of the id.
func (id PieceID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// IDAllocator hands out monotonically increasing piece ids.
// Last is persisted so a restored session never reuses an id.
type IDAllocator struct {
	Last PieceID
}

// Next returns a fresh id.
func (a *IDAllocator) Next() PieceID {
	a.Last++
	return a.Last
}
