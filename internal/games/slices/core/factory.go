package core

// Factory creates pieces with a random composition and registers them in
// the live collection.
type Factory struct {
	Pieces *Pieces
	RNG    RNG
	IDs    *IDAllocator
	Rules  Rules
}

// NewFactory creates a factory bound to the given collection and random source.
func NewFactory(pieces *Pieces, rng RNG, ids *IDAllocator, rules Rules) *Factory {
	return &Factory{Pieces: pieces, RNG: rng, IDs: ids, Rules: rules}
}

// CreatePiece generates, registers and returns a new piece.
//
// Composition:
//  1. slice count uniform in [1, MaxSlices-1]
//  2. color count uniform in [1, min(slice count, MaxColorsPerPiece)]
//  3. colors are a prefix of a shuffled palette
//  4. each color gets a run in [ceil(left/colorsLeft), left-(colorsLeft-1)]
//  5. runs are emitted back to back
func (f *Factory) CreatePiece() *Piece {
	sliceCount := f.RNG.Range(1, f.Rules.MaxSlices-1, true)
	colorCount := f.RNG.Range(1, min(sliceCount, f.Rules.MaxColorsPerPiece), true)
	palette := f.shuffledPalette()

	slices := make([]Color, 0, sliceCount)
	left := sliceCount
	for i := 0; i < colorCount; i++ {
		colorsLeft := colorCount - i
		lo := (left + colorsLeft - 1) / colorsLeft
		hi := left - (colorsLeft - 1)
		run := f.RNG.Range(lo, hi, true)
		for j := 0; j < run; j++ {
			slices = append(slices, palette[i])
		}
		left -= run
	}
	if left != 0 || len(slices) != sliceCount {
		invariantf("piece partition left %d slices unassigned", left)
	}

	p := &Piece{ID: f.IDs.Next(), Slices: slices}
	f.Pieces.Add(p)
	return p
}

// shuffledPalette returns all colors in a Fisher-Yates shuffled order.
func (f *Factory) shuffledPalette() []Color {
	palette := AllColors()
	for i := len(palette) - 1; i > 0; i-- {
		j := f.RNG.Range(0, i, true)
		palette[i], palette[j] = palette[j], palette[i]
	}
	return palette
}
