package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/clustergo/particle"
)

// RNG encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Vec3 returns a random position inside the given box.
func (r *RNG) Vec3(box particle.Box) particle.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var v particle.Vec3
	for k := 0; k < 3; k++ {
		l := box.L[k]
		if l <= 0 {
			l = 1
		}
		v[k] = r.rand.Float64() * l
	}
	return v
}

// Gas fills a store with n particles at uniformly random positions in box,
// with IDs 0..n-1. Any existing contents are replaced.
func (r *RNG) Gas(store *particle.Store, n int, box particle.Box) error {
	if err := store.Clear(); err != nil {
		return err
	}
	ps := make([]particle.Particle, 0, n)
	for i := 0; i < n; i++ {
		ps = append(ps, particle.Particle{
			ID:  particle.ID(i),
			Pos: r.Vec3(box),
		})
	}
	return store.BatchSet(ps)
}

// Chain fills a store with n particles spaced by dx along the x axis,
// starting at origin. Useful for building configurations with a known
// cluster structure.
func Chain(store *particle.Store, n int, origin particle.Vec3, dx float64) error {
	if err := store.Clear(); err != nil {
		return err
	}
	ps := make([]particle.Particle, 0, n)
	for i := 0; i < n; i++ {
		ps = append(ps, particle.Particle{
			ID:  particle.ID(i),
			Pos: particle.Vec3{origin[0] + float64(i)*dx, origin[1], origin[2]},
		})
	}
	return store.BatchSet(ps)
}
