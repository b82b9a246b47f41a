package core

import (
	"fmt"
	"hash/fnv"
)

// State is the complete mutable simulation: board occupancy, the live piece
// collection, the deck, level progress and the id and random sources.
// It is not safe for concurrent use; see Session.
type State struct {
	Rules    Rules
	Board    *Board
	Pieces   *Pieces
	Deck     *Deck
	Progress Progress
	IDs      *IDAllocator

	rng     RNG
	factory *Factory
}

// NewState creates an empty state. Call Restart to deal the first board and deck.
func NewState(rules Rules, rng RNG) *State {
	s := &State{
		Rules:    rules,
		Board:    NewBoard(rules.Rows, rules.Columns),
		Pieces:   NewPieces(rules.MaxSlices),
		Deck:     NewDeck(rules.DeckSize),
		Progress: Progress{Max: rules.MaxXP},
		IDs:      &IDAllocator{},
		rng:      rng,
	}
	s.factory = NewFactory(s.Pieces, rng, s.IDs, rules)
	return s
}

// RNG returns the random source the state draws from.
func (s *State) RNG() RNG {
	return s.rng
}

// Factory returns the piece factory bound to this state.
func (s *State) Factory() *Factory {
	return s.factory
}

// Restart clears all pieces and progress, then deals a new board and deck.
func (s *State) Restart() {
	s.Pieces.Clear()
	s.Board.ClearAll()
	s.Deck.Clear()
	s.Progress.XP = 0
	s.Board.Refill(s.factory, s.rng)
	s.Deck.Refill(s.factory)
}

// ClearedTile describes a piece removed at the end of a turn.
type ClearedTile struct {
	Tile      Tile
	Completed bool // Full and uniform; false means the piece ran empty
	Color     Color
}

// TurnOutcome is everything a presentation layer needs to show a turn.
type TurnOutcome struct {
	Piece               PieceID
	Row                 int
	Column              int
	Transfers           []Transfer
	Cleared             []ClearedTile
	Completed           int  // Pieces completed this turn
	XPGained            int  // XP actually added after clamping
	DeckRefilled        bool // The drop used the last deck piece
	BoardRefilled       bool // The board ran empty and was dealt again
	Passes              int
	GameOver            bool
	LevelCompleted      bool
	NewlyGameOver       bool
	NewlyLevelCompleted bool
}

// ValidateDrop checks a drop without changing anything.
func (s *State) ValidateDrop(id PieceID, row, column int) error {
	switch {
	case !s.Board.InBounds(row, column):
		return &DropError{Piece: id, Row: row, Column: column, Err: ErrOutOfBounds}
	case s.Board.Occupied(row, column):
		return &DropError{Piece: id, Row: row, Column: column, Err: ErrTileOccupied}
	case !s.Deck.Contains(id) || !s.Pieces.Has(id):
		return &DropError{Piece: id, Row: row, Column: column, Err: ErrUnknownPiece}
	}
	return nil
}

// DropPiece plays one full turn: place the deck piece, resolve the
// activation, remove settled pieces, award XP and refill as needed.
// On error nothing is changed.
func (s *State) DropPiece(id PieceID, row, column int) (TurnOutcome, error) {
	if err := s.ValidateDrop(id, row, column); err != nil {
		return TurnOutcome{}, err
	}

	wasGameOver := s.IsGameOver()
	wasLevelCompleted := s.IsLevelCompleted()

	out := TurnOutcome{Piece: id, Row: row, Column: column}

	s.Board.PlacePiece(id, row, column)
	s.Deck.Remove(id)
	if s.Deck.IsEmpty() {
		s.Deck.Refill(s.factory)
		out.DeckRefilled = true
	}

	act := Activate(s.Board, s.Pieces, row, column)
	out.Transfers = act.Transfers
	out.Passes = act.Passes

	xpBefore := s.Progress.XP
	for _, t := range act.Cleanup {
		p, ok := s.Pieces.Get(t.Piece)
		if !ok {
			continue
		}
		cleared := ClearedTile{Tile: t, Completed: p.IsComplete(s.Rules.MaxSlices)}
		if cleared.Completed {
			cleared.Color = p.Slices[0]
			out.Completed++
			s.Progress.Add(s.Rules.XPPerPiece)
		}
		s.Pieces.Remove(t.Piece)
		s.Board.ClearTile(t.Row, t.Column)
		cleared.Tile.Piece = InvalidPiece
		out.Cleared = append(out.Cleared, cleared)
	}
	out.XPGained = s.Progress.XP - xpBefore

	if s.Board.OccupiedCount() == 0 {
		s.Board.Refill(s.factory, s.rng)
		out.BoardRefilled = true
	}

	s.checkInvariants()

	out.GameOver = s.IsGameOver()
	out.LevelCompleted = s.IsLevelCompleted()
	out.NewlyGameOver = out.GameOver && !wasGameOver
	out.NewlyLevelCompleted = out.LevelCompleted && !wasLevelCompleted
	return out, nil
}

// IsGameOver returns true when every cell holds a piece and the live pieces
// outside the deck fill the board.
func (s *State) IsGameOver() bool {
	if s.Pieces.Len()-s.Deck.Len() < s.Board.Cells() {
		return false
	}
	return s.Board.IsSaturated()
}

// IsLevelCompleted returns true once the level XP reaches its maximum.
func (s *State) IsLevelCompleted() bool {
	return s.Progress.IsLevelCompleted()
}

// AddLevelXP adds XP, clamped at the level maximum.
func (s *State) AddLevelXP(amount int) {
	s.Progress.Add(amount)
}

// XP returns the current level XP.
func (s *State) XP() int {
	return s.Progress.XP
}

// PieceAt returns a copy of the piece on the tile.
func (s *State) PieceAt(row, column int) (*Piece, bool) {
	p, ok := s.Board.PieceAt(s.Pieces, row, column)
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Piece returns a copy of the piece with the given id.
func (s *State) Piece(id PieceID) (*Piece, bool) {
	p, ok := s.Pieces.Get(id)
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// DeckIDs returns the deck contents in order.
func (s *State) DeckIDs() []PieceID {
	return s.Deck.IDs()
}

// checkInvariants panics if a turn left the state inconsistent.
func (s *State) checkInvariants() {
	seen := make(map[PieceID]TileID)
	for _, t := range s.Board.Tiles() {
		if !t.Occupied() {
			continue
		}
		if prev, dup := seen[t.Piece]; dup {
			invariantf("piece %d occupies tiles %d and %d", t.Piece, prev, t.ID())
		}
		seen[t.Piece] = t.ID()
	}
	for _, id := range s.Pieces.IDs() {
		p, _ := s.Pieces.Get(id)
		if p.Len() > s.Rules.MaxSlices {
			invariantf("piece %d holds %d slices", id, p.Len())
		}
	}
}

// Clone returns a deep copy of the state. The copy gets its own random
// source when the original one can be cloned.
func (s *State) Clone() *State {
	rng := s.rng
	if r, ok := s.rng.(*Rand); ok {
		rng = r.Clone()
	}
	ids := *s.IDs
	c := &State{
		Rules:    s.Rules,
		Board:    s.Board.Clone(),
		Pieces:   s.Pieces.Clone(),
		Deck:     s.Deck.Clone(),
		Progress: s.Progress,
		IDs:      &ids,
		rng:      rng,
	}
	c.factory = NewFactory(c.Pieces, rng, c.IDs, c.Rules)
	return c
}

// Hash returns a hash of the observable state for determinism checks.
func (s *State) Hash() uint64 {
	h := fnv.New64a()

	fmt.Fprintf(h, "P:")
	for _, id := range s.Pieces.IDs() {
		p, _ := s.Pieces.Get(id)
		fmt.Fprintf(h, "%d=%s,", id, p)
	}

	fmt.Fprintf(h, ";B:")
	for _, t := range s.Board.Tiles() {
		fmt.Fprintf(h, "%d=%d,", t.ID(), t.Piece)
	}

	fmt.Fprintf(h, ";D:")
	for _, id := range s.Deck.IDs() {
		fmt.Fprintf(h, "%d,", id)
	}

	fmt.Fprintf(h, ";X:%d;I:%d", s.Progress.XP, s.IDs.Last)

	return h.Sum64()
}
