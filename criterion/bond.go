package criterion

import "github.com/hupe1980/clustergo/particle"

// Bond is a criterion that is true when a bond of the given type exists
// between the two particles. Bonds are stored on one partner only, so both
// directions are checked.
type Bond struct {
	bondType particle.BondType
}

// NewBond creates a bond criterion for the given bond type.
func NewBond(bt particle.BondType) *Bond {
	return &Bond{bondType: bt}
}

// BondType returns the configured bond type.
func (c *Bond) BondType() particle.BondType { return c.bondType }

// Decide implements Criterion.
func (c *Bond) Decide(a, b particle.Particle) (bool, error) {
	return a.Bonded(c.bondType, b.ID) || b.Bonded(c.bondType, a.ID), nil
}

// Name implements Criterion.
func (c *Bond) Name() string { return "bond" }
