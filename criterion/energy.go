package criterion

import (
	"errors"

	"github.com/hupe1980/clustergo/particle"
)

// ErrNilEnergyFunc is returned when an energy criterion is constructed
// without a pair energy function.
var ErrNilEnergyFunc = errors.New("pair energy function is nil")

// EnergyFunc computes the short-range interaction energy between two
// particles. It is supplied by the simulation; the criterion only thresholds
// its result.
type EnergyFunc func(a, b particle.Particle) (float64, error)

// Energy is a criterion that is true when the short-range energy between the
// particles is greater than or equal to a cutoff.
type Energy struct {
	energy EnergyFunc
	cutoff float64
}

// NewEnergy creates an energy criterion from a pair energy function and a
// cutoff.
func NewEnergy(fn EnergyFunc, cutoff float64) (*Energy, error) {
	if fn == nil {
		return nil, ErrNilEnergyFunc
	}
	return &Energy{energy: fn, cutoff: cutoff}, nil
}

// Cutoff returns the configured energy cutoff.
func (c *Energy) Cutoff() float64 { return c.cutoff }

// Decide implements Criterion.
func (c *Energy) Decide(a, b particle.Particle) (bool, error) {
	e, err := c.energy(a, b)
	if err != nil {
		return false, err
	}
	return e >= c.cutoff, nil
}

// Name implements Criterion.
func (c *Energy) Name() string { return "energy" }
