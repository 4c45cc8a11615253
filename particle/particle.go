package particle

import "math"

// ID is the stable, externally assigned identity of a particle.
// It is strictly 32-bit so membership sets can be backed by roaring bitmaps.
type ID uint32

// BondType is the numeric type of a bond, as assigned by the simulation.
type BondType int

// Bond records a bonded interaction from the owning particle to Partner.
// Bonds are stored on one partner only; lookups check both directions.
type Bond struct {
	Type    BondType
	Partner ID
}

// Vec3 is a 3-component vector of simulation coordinates.
type Vec3 [3]float64

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Norm2 returns the squared length of v.
func (v Vec3) Norm2() float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// Norm returns the length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Norm2())
}

// Particle is a single particle record.
type Particle struct {
	ID     ID
	Pos    Vec3
	Vel    Vec3
	Type   int
	Mass   float64
	Charge float64
	Bonds  []Bond
}

// EffectiveMass returns the particle mass, defaulting to 1 when unset.
func (p Particle) EffectiveMass() float64 {
	if p.Mass <= 0 {
		return 1
	}
	return p.Mass
}

// Bonded reports whether p carries a bond of type bt to partner.
func (p Particle) Bonded(bt BondType, partner ID) bool {
	for _, b := range p.Bonds {
		if b.Type == bt && b.Partner == partner {
			return true
		}
	}
	return false
}
