package core_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/vovakirdan/slicedrop/internal/games/slices/core"
)

func TestActivateAbsorbIntoMonoCenter(t *testing.T) {
	rules := core.DefaultRules()
	board, pieces := boardOf(rules, map[[2]int]*core.Piece{
		{1, 1}: core.NewPiece(1, B),
		{0, 1}: core.NewPiece(2, B, B, B, B, B),
	})

	act := core.Activate(board, pieces, 1, 1)

	want := []core.Transfer{
		{FromTile: 1, ToTile: 101, FromPiece: 2, ToPiece: 1, Color: B, Amount: 5},
	}
	if diff := cmp.Diff(want, act.Transfers); diff != "" {
		t.Errorf("transfers mismatch (-want +got):\n%s", diff)
	}
	if !pieces.IsComplete(1) {
		t.Errorf("center should be complete, got %v", slicesOf(t, pieces, 1))
	}
	if !pieces.IsEmpty(2) {
		t.Errorf("neighbor should be empty, got %v", slicesOf(t, pieces, 2))
	}
	if len(act.Cleanup) != 2 {
		t.Fatalf("cleanup = %v, want center and neighbor", act.Cleanup)
	}
	if act.Cleanup[0].Piece != 1 || act.Cleanup[1].Piece != 2 {
		t.Errorf("cleanup order = %v, want center first", act.Cleanup)
	}
}

func TestActivateNeighborPrecedence(t *testing.T) {
	rules := core.DefaultRules()
	board, pieces := boardOf(rules, map[[2]int]*core.Piece{
		{2, 1}: core.NewPiece(1, R),
		{1, 1}: core.NewPiece(2, R, R),
		{3, 1}: core.NewPiece(3, R, R, R, R),
	})

	act := core.Activate(board, pieces, 2, 1)

	want := []core.Transfer{
		{FromTile: 101, ToTile: 201, FromPiece: 2, ToPiece: 1, Color: R, Amount: 2},
		{FromTile: 301, ToTile: 201, FromPiece: 3, ToPiece: 1, Color: R, Amount: 3},
	}
	if diff := cmp.Diff(want, act.Transfers); diff != "" {
		t.Errorf("transfers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]core.Color{R}, slicesOf(t, pieces, 3)); diff != "" {
		t.Errorf("lower neighbor mismatch (-want +got):\n%s", diff)
	}
	if act.Passes != 2 {
		t.Errorf("passes = %d, want 2", act.Passes)
	}
}

func TestActivateMultiNeighborIntoMultiCenter(t *testing.T) {
	rules := core.DefaultRules()
	board, pieces := boardOf(rules, map[[2]int]*core.Piece{
		{1, 1}: core.NewPiece(1, R, B),
		{1, 0}: core.NewPiece(2, R, R, G),
	})

	act := core.Activate(board, pieces, 1, 1)

	want := []core.Transfer{
		{FromTile: 100, ToTile: 101, FromPiece: 2, ToPiece: 1, Color: R, Amount: 2},
	}
	if diff := cmp.Diff(want, act.Transfers); diff != "" {
		t.Errorf("transfers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]core.Color{R, R, R, B}, slicesOf(t, pieces, 1)); diff != "" {
		t.Errorf("center mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]core.Color{G}, slicesOf(t, pieces, 2)); diff != "" {
		t.Errorf("neighbor mismatch (-want +got):\n%s", diff)
	}
}

func TestActivateDonateToMonoNeighbor(t *testing.T) {
	rules := core.DefaultRules()
	board, pieces := boardOf(rules, map[[2]int]*core.Piece{
		{1, 1}: core.NewPiece(1, R, R, G),
		{2, 1}: core.NewPiece(2, R, R),
	})

	act := core.Activate(board, pieces, 1, 1)

	want := []core.Transfer{
		{FromTile: 101, ToTile: 201, FromPiece: 1, ToPiece: 2, Color: R, Amount: 2},
	}
	if diff := cmp.Diff(want, act.Transfers); diff != "" {
		t.Errorf("transfers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]core.Color{G}, slicesOf(t, pieces, 1)); diff != "" {
		t.Errorf("center mismatch (-want +got):\n%s", diff)
	}
	if len(act.Cleanup) != 0 {
		t.Errorf("cleanup = %v, want none", act.Cleanup)
	}
}

func TestActivateRoutesThroughOverflowTarget(t *testing.T) {
	rules := core.DefaultRules()
	board, pieces := boardOf(rules, map[[2]int]*core.Piece{
		{1, 1}: core.NewPiece(1, R, G),
		{0, 1}: core.NewPiece(2, R, R),
		{1, 2}: core.NewPiece(3, R, R, B),
	})

	act := core.Activate(board, pieces, 1, 1)

	want := []core.Transfer{
		{FromTile: 101, ToTile: 1, FromPiece: 1, ToPiece: 2, Color: R, Amount: 1},
		{FromTile: 102, ToTile: 101, FromPiece: 3, ToPiece: 1, Color: R, Amount: 2},
		{FromTile: 101, ToTile: 1, FromPiece: 1, ToPiece: 2, Color: R, Amount: 2},
	}
	if diff := cmp.Diff(want, act.Transfers); diff != "" {
		t.Errorf("transfers mismatch (-want +got):\n%s", diff)
	}

	expected := map[core.PieceID][]core.Color{
		1: {G},
		2: {R, R, R, R, R},
		3: {B},
	}
	for id, slices := range expected {
		if diff := cmp.Diff(slices, slicesOf(t, pieces, id)); diff != "" {
			t.Errorf("piece %d mismatch (-want +got):\n%s", id, diff)
		}
	}
	if act.Passes != 3 {
		t.Errorf("passes = %d, want 3", act.Passes)
	}
}

func TestActivateNoMove(t *testing.T) {
	rules := core.DefaultRules()
	board, pieces := boardOf(rules, map[[2]int]*core.Piece{
		{1, 1}: core.NewPiece(1, R),
		{1, 2}: core.NewPiece(2, B, B),
		{0, 1}: core.NewPiece(3, G, G, G, G, G, G),
	})

	act := core.Activate(board, pieces, 1, 1)

	if len(act.Transfers) != 0 {
		t.Errorf("transfers = %v, want none", act.Transfers)
	}
	if act.Passes != 1 {
		t.Errorf("passes = %d, want 1", act.Passes)
	}
	if len(act.Tiles) != 3 || act.Tiles[0].Piece != 1 {
		t.Errorf("tiles = %v, want center first plus two neighbors", act.Tiles)
	}
	// The complete neighbor is reported even though nothing moved.
	if len(act.Cleanup) != 1 || act.Cleanup[0].Piece != 3 {
		t.Errorf("cleanup = %v, want the complete neighbor", act.Cleanup)
	}
}

func TestActivateEmptyCenter(t *testing.T) {
	rules := core.DefaultRules()
	board, pieces := boardOf(rules, map[[2]int]*core.Piece{
		{0, 1}: core.NewPiece(1, R),
	})

	act := core.Activate(board, pieces, 0, 0)
	if len(act.Transfers) != 0 || len(act.Tiles) != 0 || act.Passes != 0 {
		t.Errorf("empty center produced %+v", act)
	}
}

// Random full boards: every activation must terminate, conserve slices
// and respect capacity.
func TestActivateRandomBoards(t *testing.T) {
	rules := core.DefaultRules()

	for seed := uint64(1); seed <= 300; seed++ {
		rng := core.NewRand(seed)
		pieces := core.NewPieces(rules.MaxSlices)
		f := core.NewFactory(pieces, rng, &core.IDAllocator{}, rules)
		board := core.NewBoard(rules.Rows, rules.Columns)
		for row := 0; row < rules.Rows; row++ {
			for column := 0; column < rules.Columns; column++ {
				board.PlacePiece(f.CreatePiece().ID, row, column)
			}
		}

		row := rng.Range(0, rules.Rows, false)
		column := rng.Range(0, rules.Columns, false)
		before := pieces.TotalSlices()

		act := core.Activate(board, pieces, row, column)

		if after := pieces.TotalSlices(); after != before {
			t.Fatalf("seed %d: slices %d -> %d", seed, before, after)
		}
		for _, tr := range act.Transfers {
			if tr.Amount <= 0 {
				t.Fatalf("seed %d: transfer %v has no amount", seed, tr)
			}
		}
		for _, id := range pieces.IDs() {
			if pieces.FreeSpace(id) < 0 {
				t.Fatalf("seed %d: piece %d over capacity", seed, id)
			}
		}

		if act.Passes > passBound(rules) {
			t.Fatalf("seed %d: %d passes", seed, act.Passes)
		}

		// A second activation starts with no history and must settle too.
		again := core.Activate(board, pieces, row, column)
		if again.Passes > passBound(rules) || pieces.TotalSlices() != before {
			t.Fatalf("seed %d: second activation took %d passes", seed, again.Passes)
		}
	}
}

// passBound is the most passes an activation with four neighbors can take:
// each neighbor gives at most its initial slices and takes at most its
// capacity, and every pass but the last moves something.
func passBound(rules core.Rules) int {
	return 4*2*rules.MaxSlices + 1
}

func TestActivateDonateThenRouteIgnoresMultiNeighbor(t *testing.T) {
	rules := core.DefaultRules()
	board, pieces := boardOf(rules, map[[2]int]*core.Piece{
		{1, 1}: core.NewPiece(1, R),
		{0, 1}: core.NewPiece(2, R, R, R, R, R),
		{1, 2}: core.NewPiece(3, R, B, B, B, B),
	})

	act := core.Activate(board, pieces, 1, 1)

	want := []core.Transfer{
		{FromTile: 1, ToTile: 101, FromPiece: 2, ToPiece: 1, Color: R, Amount: 5},
	}
	if diff := cmp.Diff(want, act.Transfers); diff != "" {
		t.Errorf("transfers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]core.Color{R, B, B, B, B}, slicesOf(t, pieces, 3)); diff != "" {
		t.Errorf("multi neighbor changed (-want +got):\n%s", diff)
	}
	if act.Passes != 2 {
		t.Errorf("passes = %d, want 2", act.Passes)
	}
}

// Mono neighbors of one color around a multi center used to pass the color
// around forever: the center fed one of them, pulled the color back from
// another through the overflow route, and fed the next one again.
func TestActivateSettlesSharedColorBetweenMonoNeighbors(t *testing.T) {
	rules := core.DefaultRules()
	board, pieces := boardOf(rules, map[[2]int]*core.Piece{
		{0, 2}: core.NewPiece(1, B, R, W),
		{1, 2}: core.NewPiece(2, W),
		{0, 1}: core.NewPiece(3, W, W, W, W, W),
		{0, 3}: core.NewPiece(4, W),
	})

	act := core.Activate(board, pieces, 0, 2)

	want := []core.Transfer{
		{FromTile: 2, ToTile: 102, FromPiece: 1, ToPiece: 2, Color: W, Amount: 1},
		{FromTile: 1, ToTile: 2, FromPiece: 3, ToPiece: 1, Color: W, Amount: 4},
		{FromTile: 2, ToTile: 3, FromPiece: 1, ToPiece: 4, Color: W, Amount: 4},
		{FromTile: 1, ToTile: 2, FromPiece: 3, ToPiece: 1, Color: W, Amount: 1},
		{FromTile: 2, ToTile: 3, FromPiece: 1, ToPiece: 4, Color: W, Amount: 1},
	}
	if diff := cmp.Diff(want, act.Transfers); diff != "" {
		t.Errorf("transfers mismatch (-want +got):\n%s", diff)
	}

	expected := map[core.PieceID][]core.Color{
		1: {B, R},
		2: {W, W},
		3: nil,
		4: {W, W, W, W, W, W},
	}
	for id, slices := range expected {
		if diff := cmp.Diff(slices, slicesOf(t, pieces, id), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("piece %d mismatch (-want +got):\n%s", id, diff)
		}
	}
	if act.Passes != 3 {
		t.Errorf("passes = %d, want 3", act.Passes)
	}
	if len(act.Cleanup) != 2 || act.Cleanup[0].Piece != 3 || act.Cleanup[1].Piece != 4 {
		t.Errorf("cleanup = %v, want the emptied and the completed neighbor", act.Cleanup)
	}
}

func TestActivateSettlesMixedNeighborhood(t *testing.T) {
	rules := core.DefaultRules()
	board, pieces := boardOf(rules, map[[2]int]*core.Piece{
		{2, 1}: core.NewPiece(1, G, G, R, B, B),
		{1, 1}: core.NewPiece(2, R, B, G, G, G, G),
		{3, 1}: core.NewPiece(3, B, R),
		{2, 0}: core.NewPiece(4, R),
		{2, 2}: core.NewPiece(5, R, R),
	})
	before := pieces.TotalSlices()

	act := core.Activate(board, pieces, 2, 1)

	want := []core.Transfer{
		{FromTile: 301, ToTile: 201, FromPiece: 3, ToPiece: 1, Color: B, Amount: 1},
		{FromTile: 201, ToTile: 200, FromPiece: 1, ToPiece: 4, Color: R, Amount: 1},
		{FromTile: 202, ToTile: 201, FromPiece: 5, ToPiece: 1, Color: R, Amount: 1},
		{FromTile: 201, ToTile: 301, FromPiece: 1, ToPiece: 3, Color: R, Amount: 1},
		{FromTile: 202, ToTile: 201, FromPiece: 5, ToPiece: 1, Color: R, Amount: 1},
		{FromTile: 201, ToTile: 301, FromPiece: 1, ToPiece: 3, Color: R, Amount: 1},
	}
	if diff := cmp.Diff(want, act.Transfers); diff != "" {
		t.Errorf("transfers mismatch (-want +got):\n%s", diff)
	}
	if act.Passes != 4 {
		t.Errorf("passes = %d, want 4", act.Passes)
	}
	if after := pieces.TotalSlices(); after != before {
		t.Errorf("slices %d -> %d", before, after)
	}
	if len(act.Cleanup) != 1 || act.Cleanup[0].Piece != 5 {
		t.Errorf("cleanup = %v, want the emptied right neighbor", act.Cleanup)
	}
}

// checkerboard fills the whole board, alternating two compositions.
func checkerboard(rules core.Rules, even, odd []core.Color) (*core.Board, *core.Pieces) {
	placed := make(map[[2]int]*core.Piece, rules.Cells())
	id := core.PieceID(1)
	for row := 0; row < rules.Rows; row++ {
		for column := 0; column < rules.Columns; column++ {
			slices := even
			if (row+column)%2 == 1 {
				slices = odd
			}
			placed[[2]int{row, column}] = core.NewPiece(id, slices...)
			id++
		}
	}
	return boardOf(rules, placed)
}

func TestActivateCheckerboardTerminates(t *testing.T) {
	rules := core.DefaultRules()

	testCases := []struct {
		name      string
		even, odd []core.Color
	}{
		{"single and five", []core.Color{W}, []core.Color{W, W, W, W, W}},
		{"mirrored pairs", []core.Color{R, R, R, B, B}, []core.Color{B, B, B, R, R}},
		{"three colors and mono", []core.Color{G, R, B}, []core.Color{R}},
		{"mono and mixed", []core.Color{R, R}, []core.Color{R, B, B, B}},
		{"two runs each", []core.Color{Y, Y, K}, []core.Color{K, Y}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for row := 0; row < rules.Rows; row++ {
				for column := 0; column < rules.Columns; column++ {
					board, pieces := checkerboard(rules, tc.even, tc.odd)
					before := pieces.TotalSlices()

					act := core.Activate(board, pieces, row, column)

					if act.Passes > passBound(rules) {
						t.Fatalf("(%d,%d): %d passes", row, column, act.Passes)
					}
					if after := pieces.TotalSlices(); after != before {
						t.Fatalf("(%d,%d): slices %d -> %d", row, column, before, after)
					}
				}
			}
		})
	}
}

func TestActivateIsolatedCenterChangesNothing(t *testing.T) {
	rules := core.DefaultRules()
	board, pieces := boardOf(rules, map[[2]int]*core.Piece{
		{2, 2}: core.NewPiece(1, R, B),
		{0, 0}: core.NewPiece(2, R, R, R),
		{3, 3}: core.NewPiece(3, R),
	})
	want := map[core.PieceID][]core.Color{
		1: {R, B},
		2: {R, R, R},
		3: {R},
	}

	act := core.Activate(board, pieces, 2, 2)

	if len(act.Transfers) != 0 || len(act.Cleanup) != 0 || act.Passes != 1 {
		t.Errorf("isolated center produced %+v", act)
	}
	if len(act.Tiles) != 1 || act.Tiles[0].Piece != 1 {
		t.Errorf("tiles = %v, want only the center", act.Tiles)
	}
	for id, slices := range want {
		if diff := cmp.Diff(slices, slicesOf(t, pieces, id)); diff != "" {
			t.Errorf("piece %d changed (-want +got):\n%s", id, diff)
		}
	}
	if board.OccupiedCount() != 3 {
		t.Errorf("occupied = %d, want 3", board.OccupiedCount())
	}
}
