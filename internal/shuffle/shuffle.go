// Package shuffle produces uniformly random permutations of slices.
package shuffle

import (
	"math/rand/v2"
	"sync"
)

// Shuffler permutes slices using its own random source. It is safe for
// concurrent use.
type Shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Shuffler backed by a randomly seeded PCG source.
func New() *Shuffler {
	return &Shuffler{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeeded returns a Shuffler whose output is reproducible for a seed.
func NewSeeded(seed uint64) *Shuffler {
	return &Shuffler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Shuffle returns a new slice holding the elements of in, in random order.
// The input slice is never modified; nil and single-element input come back
// as an equal copy.
func Shuffle[T any](s *Shuffler, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	// Fisher-Yates, walking down from the last index.
	for i := len(out) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

var global = New()

// Slice shuffles in with the package-level Shuffler.
func Slice[T any](in []T) []T {
	return Shuffle(global, in)
}
