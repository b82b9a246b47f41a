package core

import "fmt"

// Transfer records one atomic slice movement between two pieces.
// The ordered list of transfers produced by an activation is enough to
// replay it.
type Transfer struct {
	FromTile  TileID  `yaml:"from_tile"`
	ToTile    TileID  `yaml:"to_tile"`
	FromPiece PieceID `yaml:"from_piece"`
	ToPiece   PieceID `yaml:"to_piece"`
	Color     Color   `yaml:"color"`
	Amount    int     `yaml:"amount"`
}

// String returns a compact description, e.g. "103->102 red x2".
func (t Transfer) String() string {
	return fmt.Sprintf("%d->%d %s x%d", t.FromTile, t.ToTile, t.Color, t.Amount)
}

// Activation is the result of resolving a drop on a center tile.
type Activation struct {
	Center    Tile
	Tiles     []Tile     // Center first, then occupied neighbors in adjacency order
	Transfers []Transfer // In the order they happened
	Cleanup   []Tile     // Tiles whose piece ended empty or complete
	Passes    int        // Passes over the neighbors, including the final idle one
}

// flow is the direction a neighbor's slices of one color have moved.
type flow int8

const (
	flowNone flow = iota
	flowGave      // neighbor to center
	flowTook      // center to neighbor
)

type flowKey struct {
	piece PieceID
	color Color
}

// activator holds the per-activation working set.
type activator struct {
	board     *Board
	pieces    *Pieces
	center    Tile
	cache     map[Color]PieceID // overflow targets: mono neighbors that still have room
	flows     map[flowKey]flow
	transfers []Transfer
}

// Activate resolves the cascading slice transfer around the tile at
// (row, column). Passes are repeated over the occupied neighbors until one
// full pass moves nothing. For every neighbor that is neither full nor
// empty, its colors are tried in run order against three rules, and the
// first rule that applies ends that neighbor's turn for the pass:
//
//  1. to center: the center holds the color, is neither empty nor full, and
//     is either mono-colored or has room for the neighbor's whole run while
//     the neighbor is multi-colored.
//  2. from center: the center holds the color, is not complete, and the
//     neighbor is mono-colored. A neighbor left with room becomes the
//     overflow target for that color.
//  3. via overflow: another neighbor is the overflow target for the color;
//     the neighbor gives the center at most what the target can still absorb
//     beyond what the center already holds of that color.
//
// A neighbor never reverses direction for a color: once it has given slices
// of c to the center it cannot take c back, and once it has taken c it
// cannot give it. Every transfer therefore grows a taker's color count or
// shrinks a giver's, neither of which ever turns around, so an activation
// makes at most 2*capacity transfers per neighbor and always reaches a
// fixed point.
//
// The first overflow target for a color is kept until it fills up or the
// route is exhausted.
//
// Activate does not remove pieces; Cleanup lists the tiles to clear.
// A center without a piece yields an empty activation.
func Activate(board *Board, pieces *Pieces, row, column int) Activation {
	center, ok := board.TileAt(row, column)
	if !ok || !pieces.Has(center.Piece) {
		return Activation{}
	}

	a := &activator{
		board:  board,
		pieces: pieces,
		center: center,
		cache:  make(map[Color]PieceID),
		flows:  make(map[flowKey]flow),
	}

	neighbors := board.AdjacentOccupied(row, column)
	passes := 0
	for {
		passes++
		moved := false
		for _, next := range neighbors {
			if a.tryTransfer(next) {
				moved = true
			}
		}
		if !moved {
			break
		}
	}

	tiles := make([]Tile, 0, len(neighbors)+1)
	tiles = append(tiles, center)
	tiles = append(tiles, neighbors...)

	return Activation{
		Center:    center,
		Tiles:     tiles,
		Transfers: a.transfers,
		Cleanup:   settledTiles(pieces, tiles),
		Passes:    passes,
	}
}

// settledTiles returns the tiles whose piece is empty or complete.
func settledTiles(pieces *Pieces, tiles []Tile) []Tile {
	var settled []Tile
	for _, t := range tiles {
		if !t.Occupied() {
			continue
		}
		if pieces.IsEmpty(t.Piece) || pieces.IsComplete(t.Piece) {
			settled = append(settled, t)
		}
	}
	return settled
}

func (a *activator) piece(id PieceID) *Piece {
	p, ok := a.pieces.Get(id)
	if !ok {
		invariantf("activation references missing piece %d", id)
	}
	return p
}

// tryTransfer applies the first matching rule between the center and next.
func (a *activator) tryTransfer(next Tile) bool {
	nextPiece := a.piece(next.Piece)
	capacity := a.pieces.Capacity()
	if nextPiece.IsFull(capacity) || nextPiece.IsEmpty() {
		return false
	}

	centerPiece := a.piece(a.center.Piece)
	centerBuckets := centerPiece.ColorBuckets()
	nextBuckets := nextPiece.ColorBuckets()

	for _, c := range nextPiece.Colors() {
		t, ok := a.toCenter(next, centerPiece, centerBuckets, nextBuckets, c)
		if !ok {
			t, ok = a.fromCenter(next, nextPiece, centerPiece, centerBuckets, nextBuckets, c)
		}
		if !ok {
			t, ok = a.fromCache(next, centerPiece, c)
		}
		if ok {
			if t.Amount <= 0 {
				invariantf("transfer of %d %s slices between %d and %d", t.Amount, c, t.FromPiece, t.ToPiece)
			}
			a.transfers = append(a.transfers, t)
			return true
		}
	}
	return false
}

// toCenter moves the neighbor's run of c into the center.
// Covers 11|1133 -> 1111|33 and 1122|1133 -> 111122|33.
func (a *activator) toCenter(next Tile, center *Piece, centerBuckets, nextBuckets map[Color]int, c Color) (Transfer, bool) {
	capacity := a.pieces.Capacity()
	acceptsExtra := len(nextBuckets) > 1 && center.FreeSpace(capacity) >= nextBuckets[c]
	accepts := len(centerBuckets) == 1 || acceptsExtra

	if centerBuckets[c] == 0 || center.IsEmpty() || center.IsFull(capacity) || !accepts {
		return Transfer{}, false
	}
	if a.flows[flowKey{next.Piece, c}] == flowTook {
		return Transfer{}, false
	}

	amount := a.pieces.TransferSlices(next.Piece, a.center.Piece, c, -1)
	return a.record(next, a.center, c, amount), true
}

// fromCenter moves the center's slices of c into a mono-colored neighbor.
func (a *activator) fromCenter(next Tile, nextPiece, center *Piece, centerBuckets, nextBuckets map[Color]int, c Color) (Transfer, bool) {
	capacity := a.pieces.Capacity()
	if centerBuckets[c] == 0 || center.IsComplete(capacity) || len(nextBuckets) > 1 {
		return Transfer{}, false
	}
	if a.flows[flowKey{next.Piece, c}] == flowGave {
		return Transfer{}, false
	}

	amount := a.pieces.TransferSlices(a.center.Piece, next.Piece, c, -1)
	if !nextPiece.IsFull(capacity) {
		if current, ok := a.cache[c]; !ok || a.pieces.IsFull(current) {
			a.cache[c] = next.Piece
		}
	}
	return a.record(a.center, next, c, amount), true
}

// fromCache routes slices of c into the center on behalf of the overflow
// target for c, bounded by what the target can still take.
func (a *activator) fromCache(next Tile, center *Piece, c Color) (Transfer, bool) {
	target, ok := a.cache[c]
	if !ok || target == next.Piece || a.pieces.IsFull(target) || center.IsFull(a.pieces.Capacity()) {
		return Transfer{}, false
	}
	if a.flows[flowKey{next.Piece, c}] == flowTook {
		return Transfer{}, false
	}

	held := center.CountOf(c)
	limit := a.pieces.FreeSpace(target) - held
	if limit <= 0 {
		delete(a.cache, c)
		return Transfer{}, false
	}

	amount := a.pieces.TransferSlices(next.Piece, a.center.Piece, c, limit)
	if center.IsFull(a.pieces.Capacity()) || a.pieces.FreeSpace(target) == held+amount {
		delete(a.cache, c)
	}
	return a.record(next, a.center, c, amount), true
}

func (a *activator) record(from, to Tile, c Color, amount int) Transfer {
	if from.Piece == a.center.Piece {
		a.flows[flowKey{to.Piece, c}] = flowTook
	} else {
		a.flows[flowKey{from.Piece, c}] = flowGave
	}
	return Transfer{
		FromTile:  from.ID(),
		ToTile:    to.ID(),
		FromPiece: from.Piece,
		ToPiece:   to.Piece,
		Color:     c,
		Amount:    amount,
	}
}
