package particle

import (
	"iter"
	"maps"
	"slices"
	"sync"
)

// Store is an in-memory, map-backed table of particle records keyed by ID.
// It is safe for concurrent use; the cluster analysis only ever reads from it.
type Store struct {
	mu   sync.RWMutex
	data map[ID]Particle
}

// NewStore creates an empty particle store.
func NewStore() *Store {
	return &Store{
		data: make(map[ID]Particle),
	}
}

// Get retrieves the particle with the given ID.
func (s *Store) Get(id ID) (Particle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data[id]
	return p, ok
}

// Has reports whether a particle with the given ID exists.
func (s *Store) Has(id ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.data[id]
	return ok
}

// Set stores a particle record under p.ID, replacing any previous record.
func (s *Store) Set(p Particle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[p.ID] = p
	return nil
}

// BatchSet stores multiple particle records in a single operation.
func (s *Store) BatchSet(ps []Particle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range ps {
		s.data[p.ID] = p
	}

	return nil
}

// Delete removes the particle with the given ID.
func (s *Store) Delete(id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[id]; !ok {
		return ErrNotFound
	}

	delete(s.data, id)
	return nil
}

// Len returns the number of particles currently stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}

// Clear removes all particles from the store.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[ID]Particle)
	return nil
}

// IDs returns all particle IDs in ascending order.
// The ordering makes pair scans deterministic for a fixed particle set.
func (s *Store) IDs() []ID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := slices.Collect(maps.Keys(s.data))
	slices.Sort(ids)
	return ids
}

// All returns an iterator over all particles in ascending ID order.
func (s *Store) All() iter.Seq[Particle] {
	return func(yield func(Particle) bool) {
		for _, id := range s.IDs() {
			p, ok := s.Get(id)
			if !ok {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// ToMap returns a copy of all particle records (for serialization).
func (s *Store) ToMap() map[ID]Particle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[ID]Particle, len(s.data))
	maps.Copy(result, s.data)

	return result
}
