package core

// RNG is the deterministic random source the simulation draws from.
type RNG interface {
	// Range returns a value in [min, max) or [min, max] when maxInclusive is set.
	// If the range is empty it returns min.
	Range(min, max int, maxInclusive bool) int
}

// RNGState is the persisted form of Rand.
type RNGState struct {
	Seed    uint64 `yaml:"seed"`
	State   uint64 `yaml:"state"`
	Counter uint64 `yaml:"counter"` // Number of values drawn since seeding
}

// defaultSeed replaces a zero seed, which xorshift cannot leave.
const defaultSeed = 88172645463325252

// Rand is a deterministic pseudo-random number generator (xorshift64*).
// Its full state is exported through State so a session can resume exactly.
type Rand struct {
	seed    uint64
	state   uint64
	counter uint64
}

// NewRand creates a generator with the given seed.
func NewRand(seed uint64) *Rand {
	state := seed
	if state == 0 {
		state = defaultSeed
	}
	return &Rand{seed: seed, state: state}
}

// RestoreRand recreates a generator from persisted state.
func RestoreRand(s RNGState) *Rand {
	r := &Rand{seed: s.Seed, state: s.State, counter: s.Counter}
	if r.state == 0 {
		r.state = defaultSeed
	}
	return r
}

// State returns the persisted form of the generator.
func (r *Rand) State() RNGState {
	return RNGState{Seed: r.seed, State: r.state, Counter: r.counter}
}

// Counter returns how many values have been drawn.
func (r *Rand) Counter() uint64 {
	return r.counter
}

func step(x uint64) uint64 {
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	return x
}

// Next returns the next random uint64.
func (r *Rand) Next() uint64 {
	r.state = step(r.state)
	r.counter++
	return r.state * 2685821657736338717
}

// Peek returns the value Next would return without advancing the generator.
func (r *Rand) Peek() uint64 {
	return step(r.state) * 2685821657736338717
}

// Intn returns a random int in [0, n).
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Range implements RNG.
func (r *Rand) Range(min, max int, maxInclusive bool) int {
	if maxInclusive {
		max++
	}
	if max <= min {
		return min
	}
	return min + r.Intn(max-min)
}

// Clone returns an independent copy of the generator.
func (r *Rand) Clone() *Rand {
	c := *r
	return &c
}
