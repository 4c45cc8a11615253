package cluster

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/clustergo/particle"
)

// ID identifies a cluster. IDs are allocated monotonically per analysis and
// are only unique within the analysis that produced them.
type ID uint32

// Cluster is one connected component of the neighbor relation.
//
// Members are kept in encounter order (the order of the materialization pass),
// which is deterministic for a fixed particle set but carries no physical
// meaning. A roaring bitmap mirrors the list for O(1) membership tests.
type Cluster struct {
	id      ID
	members []particle.ID
	bits    *roaring.Bitmap
}

// New creates an empty cluster with the given canonical ID.
func New(id ID) *Cluster {
	return &Cluster{
		id:   id,
		bits: roaring.New(),
	}
}

// ID returns the canonical cluster ID.
func (c *Cluster) ID() ID {
	return c.id
}

// Add appends a particle to the member list. Duplicates are ignored.
func (c *Cluster) Add(pid particle.ID) {
	if c.bits.Contains(uint32(pid)) {
		return
	}
	c.bits.Add(uint32(pid))
	c.members = append(c.members, pid)
}

// Contains reports whether the particle belongs to this cluster.
func (c *Cluster) Contains(pid particle.ID) bool {
	return c.bits.Contains(uint32(pid))
}

// Size returns the number of member particles.
func (c *Cluster) Size() int {
	return len(c.members)
}

// Members returns a copy of the member list in encounter order.
func (c *Cluster) Members() []particle.ID {
	return slices.Clone(c.members)
}

// All returns an iterator over the member list in encounter order.
func (c *Cluster) All() iter.Seq[particle.ID] {
	return func(yield func(particle.ID) bool) {
		for _, pid := range c.members {
			if !yield(pid) {
				return
			}
		}
	}
}

// Intersects reports whether the two clusters share any member.
// Final clusters of a single analysis are disjoint by construction; this is
// mainly useful for validation and for comparing independent analyses.
func (c *Cluster) Intersects(other *Cluster) bool {
	return c.bits.Intersects(other.bits)
}

// fetch resolves every member against the store, failing fast on a missing
// identity so observables never silently skip particles.
func (c *Cluster) fetch(store *particle.Store) ([]particle.Particle, error) {
	ps := make([]particle.Particle, 0, len(c.members))
	for _, pid := range c.members {
		p, ok := store.Get(pid)
		if !ok {
			return nil, fmt.Errorf("cluster %d: %w: %d", c.id, particle.ErrNotFound, pid)
		}
		ps = append(ps, p)
	}
	return ps, nil
}

// CenterOfMass returns the mass-weighted center of the cluster.
// Coordinates are used as stored (no periodic folding).
func (c *Cluster) CenterOfMass(store *particle.Store) (particle.Vec3, error) {
	ps, err := c.fetch(store)
	if err != nil {
		return particle.Vec3{}, err
	}
	if len(ps) == 0 {
		return particle.Vec3{}, ErrEmptyCluster
	}

	var com particle.Vec3
	var total float64
	for _, p := range ps {
		m := p.EffectiveMass()
		com = com.Add(p.Pos.Scale(m))
		total += m
	}
	return com.Scale(1 / total), nil
}

// RadiusOfGyration returns the mass-weighted radius of gyration.
func (c *Cluster) RadiusOfGyration(store *particle.Store) (float64, error) {
	ps, err := c.fetch(store)
	if err != nil {
		return 0, err
	}
	if len(ps) == 0 {
		return 0, ErrEmptyCluster
	}

	com, err := c.CenterOfMass(store)
	if err != nil {
		return 0, err
	}

	var sum, total float64
	for _, p := range ps {
		m := p.EffectiveMass()
		sum += m * p.Pos.Sub(com).Norm2()
		total += m
	}
	return math.Sqrt(sum / total), nil
}

// LongestDistance returns the largest pairwise distance between members.
// A singleton cluster has longest distance 0.
func (c *Cluster) LongestDistance(store *particle.Store) (float64, error) {
	ps, err := c.fetch(store)
	if err != nil {
		return 0, err
	}
	if len(ps) == 0 {
		return 0, ErrEmptyCluster
	}

	var longest float64
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if d := ps[i].Pos.Sub(ps[j].Pos).Norm(); d > longest {
				longest = d
			}
		}
	}
	return longest, nil
}
