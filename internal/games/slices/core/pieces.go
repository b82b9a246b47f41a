package core

import "sort"

// Pieces is the live piece collection. It owns slice content and the
// capacity every piece is measured against.
type Pieces struct {
	capacity int
	byID     map[PieceID]*Piece
}

// NewPieces creates an empty collection for pieces of the given capacity.
func NewPieces(capacity int) *Pieces {
	return &Pieces{
		capacity: capacity,
		byID:     make(map[PieceID]*Piece),
	}
}

// Capacity returns the slice capacity of every piece.
func (ps *Pieces) Capacity() int {
	return ps.capacity
}

// Add registers a piece. It panics if the piece exceeds capacity or the id
// is already taken.
func (ps *Pieces) Add(p *Piece) {
	if !p.ID.IsValid() {
		invariantf("piece registered with invalid id")
	}
	if _, exists := ps.byID[p.ID]; exists {
		invariantf("piece %d registered twice", p.ID)
	}
	if p.Len() > ps.capacity {
		invariantf("piece %d has %d slices, capacity is %d", p.ID, p.Len(), ps.capacity)
	}
	ps.byID[p.ID] = p
}

// Get returns the piece with the given id.
func (ps *Pieces) Get(id PieceID) (*Piece, bool) {
	p, ok := ps.byID[id]
	return p, ok
}

// Has returns true if the id is live.
func (ps *Pieces) Has(id PieceID) bool {
	_, ok := ps.byID[id]
	return ok
}

// Remove drops a piece from the collection. Removing an unknown id is a no-op.
func (ps *Pieces) Remove(id PieceID) {
	delete(ps.byID, id)
}

// Clear removes every piece.
func (ps *Pieces) Clear() {
	ps.byID = make(map[PieceID]*Piece)
}

// Len returns the number of live pieces.
func (ps *Pieces) Len() int {
	return len(ps.byID)
}

// IDs returns all live ids in ascending order.
func (ps *Pieces) IDs() []PieceID {
	ids := make([]PieceID, 0, len(ps.byID))
	for id := range ps.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// TotalSlices returns the number of slices across all live pieces.
func (ps *Pieces) TotalSlices() int {
	total := 0
	for _, p := range ps.byID {
		total += p.Len()
	}
	return total
}

// IsFull reports whether the piece is at capacity. Unknown ids are not full.
func (ps *Pieces) IsFull(id PieceID) bool {
	p, ok := ps.byID[id]
	return ok && p.IsFull(ps.capacity)
}

// IsEmpty reports whether the piece holds no slices. Unknown ids are not empty.
func (ps *Pieces) IsEmpty(id PieceID) bool {
	p, ok := ps.byID[id]
	return ok && p.IsEmpty()
}

// IsComplete reports whether the piece is full and uniform.
func (ps *Pieces) IsComplete(id PieceID) bool {
	p, ok := ps.byID[id]
	return ok && p.IsComplete(ps.capacity)
}

// FreeSpace returns the free slots of a piece, 0 for unknown ids.
func (ps *Pieces) FreeSpace(id PieceID) int {
	p, ok := ps.byID[id]
	if !ok {
		return 0
	}
	return p.FreeSpace(ps.capacity)
}

// TransferSlices moves slices of one color from src to dst and returns the
// amount moved: min(slices of that color in src, free space in dst, limit).
// A negative limit means no explicit cap.
func (ps *Pieces) TransferSlices(src, dst PieceID, c Color, limit int) int {
	from, ok := ps.byID[src]
	if !ok {
		invariantf("transfer from unknown piece %d", src)
	}
	to, ok := ps.byID[dst]
	if !ok {
		invariantf("transfer to unknown piece %d", dst)
	}

	amount := min(from.CountOf(c), to.FreeSpace(ps.capacity))
	if limit >= 0 {
		amount = min(amount, limit)
	}
	if amount < 0 {
		invariantf("negative transfer of %s from %d to %d", c, src, dst)
	}

	collected := from.take(c, amount)
	to.fill(c, collected)

	if to.Len() > ps.capacity {
		invariantf("piece %d was filled to %d slices, capacity is %d", dst, to.Len(), ps.capacity)
	}
	return collected
}

// Clone returns a deep copy of the collection.
func (ps *Pieces) Clone() *Pieces {
	clone := NewPieces(ps.capacity)
	for id, p := range ps.byID {
		clone.byID[id] = p.Clone()
	}
	return clone
}
