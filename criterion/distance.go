package criterion

import (
	"errors"

	"github.com/hupe1980/clustergo/particle"
)

// ErrInvalidCutoff is returned when a criterion is constructed with a
// non-positive cutoff.
var ErrInvalidCutoff = errors.New("cutoff must be positive")

// Distance is a criterion that is true when two particles are closer than a
// cutoff. Periodic boundaries are treated via the minimum image convention of
// the supplied box.
type Distance struct {
	box    particle.Box
	cutoff float64
}

// NewDistance creates a distance criterion with the given box and cutoff.
func NewDistance(box particle.Box, cutoff float64) (*Distance, error) {
	if cutoff <= 0 {
		return nil, ErrInvalidCutoff
	}
	return &Distance{box: box, cutoff: cutoff}, nil
}

// Cutoff returns the configured distance cutoff.
func (d *Distance) Cutoff() float64 { return d.cutoff }

// Decide implements Criterion.
func (d *Distance) Decide(a, b particle.Particle) (bool, error) {
	return d.box.Distance(a.Pos, b.Pos) < d.cutoff, nil
}

// Name implements Criterion.
func (d *Distance) Name() string { return "distance" }
