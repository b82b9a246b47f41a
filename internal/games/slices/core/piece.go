package core

import "strings"

// Piece is a grid-placeable entity holding an ordered sequence of slices.
// Adjacent equal colors form a run; runs are kept contiguous by every mutation.
type Piece struct {
	ID     PieceID
	Slices []Color
}

// NewPiece creates a piece with a copy of the given slices.
func NewPiece(id PieceID, slices ...Color) *Piece {
	s := make([]Color, len(slices))
	copy(s, slices)
	return &Piece{ID: id, Slices: s}
}

// Len returns the number of slices.
func (p *Piece) Len() int {
	return len(p.Slices)
}

// IsEmpty returns true if the piece holds no slices.
func (p *Piece) IsEmpty() bool {
	return len(p.Slices) == 0
}

// FreeSpace returns how many more slices fit before reaching capacity.
func (p *Piece) FreeSpace(capacity int) int {
	return capacity - len(p.Slices)
}

// IsFull returns true if the piece has reached capacity.
func (p *Piece) IsFull(capacity int) bool {
	return len(p.Slices) == capacity
}

// IsComplete returns true if the piece is full and every slice has the same color.
func (p *Piece) IsComplete(capacity int) bool {
	return p.IsFull(capacity) && p.IsUniform()
}

// IsUniform returns true if the piece is non-empty and holds a single color.
func (p *Piece) IsUniform() bool {
	if len(p.Slices) == 0 {
		return false
	}
	for _, c := range p.Slices[1:] {
		if c != p.Slices[0] {
			return false
		}
	}
	return true
}

// ColorBuckets groups slices by color.
func (p *Piece) ColorBuckets() map[Color]int {
	buckets := make(map[Color]int)
	for _, c := range p.Slices {
		buckets[c]++
	}
	return buckets
}

// Colors returns the distinct colors in order of first appearance.
func (p *Piece) Colors() []Color {
	seen := make(map[Color]bool, 3)
	colors := make([]Color, 0, 3)
	for _, c := range p.Slices {
		if seen[c] {
			continue
		}
		seen[c] = true
		colors = append(colors, c)
	}
	return colors
}

// DistinctColors returns the number of different colors in the piece.
func (p *Piece) DistinctColors() int {
	return len(p.Colors())
}

// CountOf returns how many slices of the given color the piece holds.
func (p *Piece) CountOf(c Color) int {
	n := 0
	for _, s := range p.Slices {
		if s == c {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the piece.
func (p *Piece) Clone() *Piece {
	return NewPiece(p.ID, p.Slices...)
}

// String renders the slices as color characters, e.g. "RRBB".
func (p *Piece) String() string {
	var sb strings.Builder
	for _, c := range p.Slices {
		sb.WriteRune(c.Char())
	}
	return sb.String()
}

// take removes up to n slices of color c, scanning from the end.
// Returns the number removed.
func (p *Piece) take(c Color, n int) int {
	removed := 0
	for i := len(p.Slices) - 1; i >= 0 && removed < n; i-- {
		if p.Slices[i] != c {
			continue
		}
		p.Slices = append(p.Slices[:i], p.Slices[i+1:]...)
		removed++
	}
	return removed
}

// fill inserts n slices of color c next to the existing run of that color,
// or appends them when the piece has none.
func (p *Piece) fill(c Color, n int) {
	if n <= 0 {
		return
	}
	at := len(p.Slices)
	for i, s := range p.Slices {
		if s == c {
			at = i
			break
		}
	}
	run := make([]Color, n)
	for i := range run {
		run[i] = c
	}
	slices := make([]Color, 0, len(p.Slices)+n)
	slices = append(slices, p.Slices[:at]...)
	slices = append(slices, run...)
	slices = append(slices, p.Slices[at:]...)
	p.Slices = slices
}
