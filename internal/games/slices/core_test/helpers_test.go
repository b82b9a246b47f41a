package core_test

import (
	"testing"

	"github.com/vovakirdan/slicedrop/internal/games/slices/core"
)

const (
	W = core.ColorWhite
	K = core.ColorBlack
	R = core.ColorRed
	Y = core.ColorYellow
	G = core.ColorGreen
	B = core.ColorBlue
)

// fixture describes a hand-built position.
type fixture struct {
	rules  core.Rules
	pieces map[core.PieceID][]core.Color
	tiles  map[[2]int]core.PieceID
	deck   []core.PieceID
	xp     int
}

func (f fixture) snapshot() core.Snapshot {
	snap := core.Snapshot{
		Version: core.SnapshotVersion,
		Rules:   f.rules,
		Deck:    f.deck,
		RNG:     core.RNGState{Seed: 7, State: 7},
		XP:      f.xp,
	}
	for id, slices := range f.pieces {
		snap.Pieces = append(snap.Pieces, core.PieceRecord{ID: id, Slices: slices})
		if id > snap.LastID {
			snap.LastID = id
		}
	}
	for pos, id := range f.tiles {
		snap.Tiles = append(snap.Tiles, core.TileRecord{Row: pos[0], Column: pos[1], Piece: id})
	}
	return snap
}

func (f fixture) build(t *testing.T) *core.State {
	t.Helper()
	s, err := core.FromSnapshot(f.snapshot())
	if err != nil {
		t.Fatalf("FromSnapshot failed: %v", err)
	}
	return s
}

// boardOf places pieces on a fresh board for activation tests.
func boardOf(rules core.Rules, placed map[[2]int]*core.Piece) (*core.Board, *core.Pieces) {
	board := core.NewBoard(rules.Rows, rules.Columns)
	pieces := core.NewPieces(rules.MaxSlices)
	for pos, p := range placed {
		pieces.Add(p)
		board.PlacePiece(p.ID, pos[0], pos[1])
	}
	return board, pieces
}

func slicesOf(t *testing.T, pieces *core.Pieces, id core.PieceID) []core.Color {
	t.Helper()
	p, ok := pieces.Get(id)
	if !ok {
		t.Fatalf("piece %d not found", id)
	}
	return p.Slices
}

func smallRules(rows, columns int) core.Rules {
	r := core.DefaultRules()
	r.Rows = rows
	r.Columns = columns
	r.DeckSize = 1
	return r
}
