package core_test

import (
	"testing"

	"github.com/vovakirdan/slicedrop/internal/games/slices/core"
)

func TestCreatePieceComposition(t *testing.T) {
	rules := core.DefaultRules()
	pieces := core.NewPieces(rules.MaxSlices)
	ids := &core.IDAllocator{}
	f := core.NewFactory(pieces, core.NewRand(42), ids, rules)

	var last core.PieceID
	lengths := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		p := f.CreatePiece()

		if p.ID <= last {
			t.Fatalf("id %d not greater than previous %d", p.ID, last)
		}
		last = p.ID

		if p.Len() < 1 || p.Len() > rules.MaxSlices-1 {
			t.Fatalf("piece %v has %d slices", p, p.Len())
		}
		lengths[p.Len()] = true

		colors := p.Colors()
		if len(colors) > rules.MaxColorsPerPiece || len(colors) > p.Len() {
			t.Fatalf("piece %v has %d colors", p, len(colors))
		}

		// Every color forms exactly one contiguous run.
		runs := 1
		for j := 1; j < p.Len(); j++ {
			if p.Slices[j] != p.Slices[j-1] {
				runs++
			}
		}
		if runs != len(colors) {
			t.Fatalf("piece %v has %d runs for %d colors", p, runs, len(colors))
		}

		if !pieces.Has(p.ID) {
			t.Fatalf("piece %d not registered", p.ID)
		}
	}

	for n := 1; n <= rules.MaxSlices-1; n++ {
		if !lengths[n] {
			t.Errorf("no piece of length %d generated", n)
		}
	}
}

func TestCreatePieceDeterministic(t *testing.T) {
	rules := core.DefaultRules()
	generate := func() []string {
		f := core.NewFactory(core.NewPieces(rules.MaxSlices), core.NewRand(99), &core.IDAllocator{}, rules)
		var out []string
		for i := 0; i < 50; i++ {
			out = append(out, f.CreatePiece().String())
		}
		return out
	}

	a, b := generate(), generate()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("piece %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestRandPeekAndRestore(t *testing.T) {
	r := core.NewRand(5)
	r.Next()
	r.Next()

	peek := r.Peek()
	restored := core.RestoreRand(r.State())

	if got := r.Next(); got != peek {
		t.Errorf("Next = %d, Peek said %d", got, peek)
	}
	if got := restored.Next(); got != peek {
		t.Errorf("restored Next = %d, want %d", got, peek)
	}
	if r.Counter() != 3 {
		t.Errorf("Counter = %d, want 3", r.Counter())
	}
}

func TestRandRange(t *testing.T) {
	r := core.NewRand(1)
	for i := 0; i < 1000; i++ {
		if v := r.Range(2, 5, false); v < 2 || v >= 5 {
			t.Fatalf("Range(2,5,false) = %d", v)
		}
		if v := r.Range(2, 5, true); v < 2 || v > 5 {
			t.Fatalf("Range(2,5,true) = %d", v)
		}
	}
	if v := r.Range(3, 3, false); v != 3 {
		t.Errorf("empty range returned %d, want 3", v)
	}
}
