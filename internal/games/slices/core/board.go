package core

// Board is the fixed-size grid of tiles. Tiles are created lazily on first
// placement and persist as empty placeholders once cleared.
// Cells are stored in row-major order: index = row*Columns + column.
type Board struct {
	Rows    int
	Columns int
	tiles   []*Tile
}

// NewBoard creates an empty board.
func NewBoard(rows, columns int) *Board {
	return &Board{
		Rows:    rows,
		Columns: columns,
		tiles:   make([]*Tile, rows*columns),
	}
}

// index converts a coordinate to a flat array index.
func (b *Board) index(row, column int) int {
	return row*b.Columns + column
}

// Cells returns the number of cells on the board.
func (b *Board) Cells() int {
	return b.Rows * b.Columns
}

// InBounds returns true if the coordinate is within the board.
func (b *Board) InBounds(row, column int) bool {
	return row >= 0 && row < b.Rows && column >= 0 && column < b.Columns
}

// TileAt returns the tile at the coordinate. It returns false if the
// coordinate is out of bounds or the cell was never populated.
func (b *Board) TileAt(row, column int) (Tile, bool) {
	if !b.InBounds(row, column) {
		return Tile{}, false
	}
	t := b.tiles[b.index(row, column)]
	if t == nil {
		return Tile{}, false
	}
	return *t, true
}

// PieceAt resolves the occupant of a tile through the piece collection.
// An occupant missing from the collection is treated as empty.
func (b *Board) PieceAt(pieces *Pieces, row, column int) (*Piece, bool) {
	t, ok := b.TileAt(row, column)
	if !ok || !t.Occupied() {
		return nil, false
	}
	return pieces.Get(t.Piece)
}

// Occupied returns true if the tile holds a valid piece id.
func (b *Board) Occupied(row, column int) bool {
	t, ok := b.TileAt(row, column)
	return ok && t.Occupied()
}

// adjacentOffsets is the neighbor enumeration order: vertical first, then
// horizontal. Activation uses it as tie-break precedence.
var adjacentOffsets = [4][2]int{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}

// AdjacentOccupied returns the orthogonal neighbors holding a valid piece id,
// in the order row-1, row+1, column-1, column+1.
func (b *Board) AdjacentOccupied(row, column int) []Tile {
	tiles := make([]Tile, 0, len(adjacentOffsets))
	for _, off := range adjacentOffsets {
		t, ok := b.TileAt(row+off[0], column+off[1])
		if ok && t.Occupied() {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// PlacePiece writes the piece id into the tile, creating the tile if needed.
// It does not check for an existing occupant; callers validate first.
func (b *Board) PlacePiece(id PieceID, row, column int) {
	if !b.InBounds(row, column) {
		invariantf("place piece %d out of bounds at (%d,%d)", id, row, column)
	}
	i := b.index(row, column)
	if b.tiles[i] == nil {
		b.tiles[i] = &Tile{Row: row, Column: column}
	}
	b.tiles[i].Piece = id
}

// ClearTile marks the tile as empty. Clearing an empty or absent tile is a no-op.
func (b *Board) ClearTile(row, column int) {
	if !b.InBounds(row, column) {
		return
	}
	if t := b.tiles[b.index(row, column)]; t != nil {
		t.Piece = InvalidPiece
	}
}

// ClearAll empties every tile, keeping tile records.
func (b *Board) ClearAll() {
	for _, t := range b.tiles {
		if t != nil {
			t.Piece = InvalidPiece
		}
	}
}

// Tiles returns every populated tile in row-major order.
func (b *Board) Tiles() []Tile {
	tiles := make([]Tile, 0, len(b.tiles))
	for _, t := range b.tiles {
		if t != nil {
			tiles = append(tiles, *t)
		}
	}
	return tiles
}

// OccupiedCount returns the number of tiles holding a piece id.
func (b *Board) OccupiedCount() int {
	n := 0
	for _, t := range b.tiles {
		if t != nil && t.Occupied() {
			n++
		}
	}
	return n
}

// IsSaturated returns true if every cell holds a piece.
func (b *Board) IsSaturated() bool {
	return b.OccupiedCount() == b.Cells()
}

// Refill clears the board, then scatters between a quarter and a half of the
// cell count (both inclusive) of fresh pieces on distinct random cells.
// Cells are picked by sequential selection sampling: walking positions in
// order, each is taken with probability needed/remaining, which yields a
// uniformly random subset without collisions. It stands in for drawing each
// cell by index from a shrinking list of free positions: the distribution is
// the same, but the draw sequence is not, so a seed deals a different board
// than that scheme would.
// Pieces that occupied the board before the refill are removed from the
// factory's collection.
func (b *Board) Refill(f *Factory, rng RNG) {
	for _, t := range b.tiles {
		if t != nil && t.Occupied() {
			f.Pieces.Remove(t.Piece)
			t.Piece = InvalidPiece
		}
	}

	total := b.Cells()
	needed := rng.Range(total/4, total/2, true)

	for pos := 0; pos < total && needed > 0; pos++ {
		remaining := total - pos
		if rng.Range(0, remaining, false) >= needed {
			continue
		}
		b.PlacePiece(f.CreatePiece().ID, pos/b.Columns, pos%b.Columns)
		needed--
	}
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	clone := NewBoard(b.Rows, b.Columns)
	for i, t := range b.tiles {
		if t != nil {
			tc := *t
			clone.tiles[i] = &tc
		}
	}
	return clone
}
