package review

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is a seedable randomness source safe for use from concurrent requests.
// Tests construct one with a fixed seed to make selections reproducible.
type Rand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a source seeded with seed.
func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// NewTimeRand returns a source seeded from the clock, for production use.
func NewTimeRand() *Rand {
	return NewRand(time.Now().UnixNano())
}

// Intn returns a uniform int in [0, n).
func (r *Rand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Intn(n)
}

// Shuffle pseudo-randomizes the order of n elements via swap.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.r.Shuffle(n, swap)
}
