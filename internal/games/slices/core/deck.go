package core

// Deck is the ordered queue of pieces offered to the player.
// Its length is the configured maximum right after a refill and only
// shrinks as pieces are drawn.
type Deck struct {
	ids []PieceID
	max int
}

// NewDeck creates an empty deck holding at most max pieces.
func NewDeck(max int) *Deck {
	if max < 1 {
		max = 1
	}
	return &Deck{ids: make([]PieceID, 0, max), max: max}
}

// Max returns the configured deck size.
func (d *Deck) Max() int {
	return d.max
}

// Len returns the number of pieces left in the deck.
func (d *Deck) Len() int {
	return len(d.ids)
}

// IsEmpty returns true if no pieces are left.
func (d *Deck) IsEmpty() bool {
	return len(d.ids) == 0
}

// IDs returns a copy of the deck contents in order.
func (d *Deck) IDs() []PieceID {
	ids := make([]PieceID, len(d.ids))
	copy(ids, d.ids)
	return ids
}

// At returns the piece id at a deck slot.
func (d *Deck) At(slot int) (PieceID, bool) {
	if slot < 0 || slot >= len(d.ids) {
		return InvalidPiece, false
	}
	return d.ids[slot], true
}

// Contains returns true if the id is in the deck.
func (d *Deck) Contains(id PieceID) bool {
	for _, x := range d.ids {
		if x == id {
			return true
		}
	}
	return false
}

// Remove takes the id out of the deck, preserving the order of the rest.
// Returns false if the id was not in the deck.
func (d *Deck) Remove(id PieceID) bool {
	for i, x := range d.ids {
		if x == id {
			d.ids = append(d.ids[:i], d.ids[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the deck. The pieces stay in the live collection.
func (d *Deck) Clear() {
	d.ids = d.ids[:0]
}

// Refill empties the deck and fills it with freshly created pieces.
// Pieces still in the deck are removed from the live collection.
func (d *Deck) Refill(f *Factory) {
	for _, id := range d.ids {
		f.Pieces.Remove(id)
	}
	d.Clear()
	for i := 0; i < d.max; i++ {
		d.ids = append(d.ids, f.CreatePiece().ID)
	}
}

// Clone returns a deep copy of the deck.
func (d *Deck) Clone() *Deck {
	return &Deck{ids: d.IDs(), max: d.max}
}
