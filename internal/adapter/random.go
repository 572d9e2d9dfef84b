package adapter

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Random is the pseudo-random source used for weight sampling and shuffles.
// It is passed explicitly so callers can seed it for reproducible results.
//
//go:generate mockgen -source=random.go -destination=../mocks/random.go -package=mocks -mock_names=Random=MockRandom
type Random interface {
	// Float64 returns a number in [0.0, 1.0)
	Float64() float64
	// IntN returns a number in [0, n)
	IntN(n int) int
	// Shuffle pseudo-randomizes the order of n elements
	Shuffle(n int, swap func(i, j int))
}

// lockedRandom guards a PCG source so one instance can serve concurrent requests
type lockedRandom struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandom creates a Random seeded with seed. A zero seed uses the current time.
func NewRandom(seed uint64) Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint:gosec,G115
	}
	return &lockedRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))} //nolint:gosec,G404
}

func (l *lockedRandom) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRandom) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRandom) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}
