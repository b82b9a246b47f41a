package core

import (
	"errors"
	"fmt"
)

// SnapshotVersion is bumped whenever the Snapshot layout changes.
const SnapshotVersion = 1

// PieceRecord is the persisted form of a live piece.
type PieceRecord struct {
	ID     PieceID `yaml:"id"`
	Slices []Color `yaml:"slices,flow"`
}

// TileRecord is the persisted form of a populated tile.
type TileRecord struct {
	Row    int     `yaml:"row"`
	Column int     `yaml:"column"`
	Piece  PieceID `yaml:"piece,omitempty"`
}

// Snapshot is a lossless, serializable picture of a State.
type Snapshot struct {
	Version int           `yaml:"version"`
	Rules   Rules         `yaml:"rules"`
	Pieces  []PieceRecord `yaml:"pieces"`
	Tiles   []TileRecord  `yaml:"tiles"`
	Deck    []PieceID     `yaml:"deck,flow"`
	LastID  PieceID       `yaml:"last_id"`
	RNG     RNGState      `yaml:"rng"`
	XP      int           `yaml:"xp"`
}

// Snapshot captures the state. It fails if the random source is not a *Rand.
func (s *State) Snapshot() (Snapshot, error) {
	r, ok := s.rng.(*Rand)
	if !ok {
		return Snapshot{}, ErrRNGNotPersistable
	}

	snap := Snapshot{
		Version: SnapshotVersion,
		Rules:   s.Rules,
		Deck:    s.Deck.IDs(),
		LastID:  s.IDs.Last,
		RNG:     r.State(),
		XP:      s.Progress.XP,
	}
	for _, id := range s.Pieces.IDs() {
		p, _ := s.Pieces.Get(id)
		snap.Pieces = append(snap.Pieces, PieceRecord{ID: id, Slices: p.Clone().Slices})
	}
	for _, t := range s.Board.Tiles() {
		snap.Tiles = append(snap.Tiles, TileRecord{Row: t.Row, Column: t.Column, Piece: t.Piece})
	}
	return snap, nil
}

// FromSnapshot rebuilds a State from a snapshot after validating it.
func FromSnapshot(snap Snapshot) (*State, error) {
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot: unsupported version %d", snap.Version)
	}
	if err := snap.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	s := NewState(snap.Rules, RestoreRand(snap.RNG))
	s.IDs.Last = snap.LastID

	for _, rec := range snap.Pieces {
		if !rec.ID.IsValid() || rec.ID > snap.LastID {
			return nil, fmt.Errorf("snapshot: piece id %d outside allocated range", rec.ID)
		}
		if s.Pieces.Has(rec.ID) {
			return nil, fmt.Errorf("snapshot: duplicate piece %d", rec.ID)
		}
		if len(rec.Slices) > snap.Rules.MaxSlices {
			return nil, fmt.Errorf("snapshot: piece %d holds %d slices", rec.ID, len(rec.Slices))
		}
		for _, c := range rec.Slices {
			if !c.Valid() {
				return nil, fmt.Errorf("snapshot: piece %d has invalid color %d", rec.ID, c)
			}
		}
		s.Pieces.Add(NewPiece(rec.ID, rec.Slices...))
	}

	placed := make(map[PieceID]bool)
	listed := make(map[TileID]bool)
	for _, rec := range snap.Tiles {
		if !s.Board.InBounds(rec.Row, rec.Column) {
			return nil, fmt.Errorf("snapshot: tile (%d,%d): %w", rec.Row, rec.Column, ErrOutOfBounds)
		}
		if listed[TileIDOf(rec.Row, rec.Column)] {
			return nil, fmt.Errorf("snapshot: tile (%d,%d) listed twice", rec.Row, rec.Column)
		}
		listed[TileIDOf(rec.Row, rec.Column)] = true
		if rec.Piece.IsValid() {
			if !s.Pieces.Has(rec.Piece) {
				return nil, fmt.Errorf("snapshot: tile (%d,%d) holds unknown piece %d", rec.Row, rec.Column, rec.Piece)
			}
			if placed[rec.Piece] {
				return nil, fmt.Errorf("snapshot: piece %d placed twice", rec.Piece)
			}
			placed[rec.Piece] = true
		}
		s.Board.PlacePiece(rec.Piece, rec.Row, rec.Column)
	}

	if len(snap.Deck) > snap.Rules.DeckSize {
		return nil, errors.New("snapshot: deck larger than deck size")
	}
	for _, id := range snap.Deck {
		if !s.Pieces.Has(id) || placed[id] || s.Deck.Contains(id) {
			return nil, fmt.Errorf("snapshot: invalid deck piece %d", id)
		}
		s.Deck.ids = append(s.Deck.ids, id)
	}

	if snap.XP < 0 || snap.XP > snap.Rules.MaxXP {
		return nil, fmt.Errorf("snapshot: xp %d outside [0,%d]", snap.XP, snap.Rules.MaxXP)
	}
	s.Progress.XP = snap.XP
	return s, nil
}
