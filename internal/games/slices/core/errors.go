package core

import (
	"errors"
	"fmt"
)

// Drop failures reported to the caller. No state is mutated when one occurs.
var (
	ErrTileOccupied = errors.New("tile is already occupied")
	ErrUnknownPiece = errors.New("piece is not in the deck")
	ErrOutOfBounds  = errors.New("tile is outside the board")
)

// DropError describes a rejected drop.
type DropError struct {
	Piece  PieceID
	Row    int
	Column int
	Err    error
}

func (e *DropError) Error() string {
	return fmt.Sprintf("drop piece %d on (%d,%d): %v", e.Piece, e.Row, e.Column, e.Err)
}

func (e *DropError) Unwrap() error {
	return e.Err
}

// InvariantError is the panic value used when the simulation reaches a state
// that can only be produced by a bug. It is never returned as an error.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "slices: invariant violated: " + e.Msg
}

func invariantf(format string, args ...any) {
	panic(&InvariantError{Msg: fmt.Sprintf(format, args...)})
}

// ErrRNGNotPersistable is returned by Snapshot when the state draws from a
// random source whose position cannot be recorded.
var ErrRNGNotPersistable = errors.New("random source cannot be persisted")
