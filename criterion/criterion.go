package criterion

import "github.com/hupe1980/clustergo/particle"

// Criterion decides whether two particles count as neighbors.
//
// Implementations must be pure, symmetric (Decide(a,b) == Decide(b,a)) and
// deterministic for a fixed particle state. A returned error aborts the
// analysis and is surfaced to the caller unchanged; it indicates a caller
// bug, not a transient condition.
type Criterion interface {
	// Decide reports whether a and b are neighbors.
	Decide(a, b particle.Particle) (bool, error)

	// Name returns a short name for logging.
	Name() string
}

// Func adapts a plain function to the Criterion interface.
type Func func(a, b particle.Particle) (bool, error)

// Decide implements Criterion.
func (f Func) Decide(a, b particle.Particle) (bool, error) {
	return f(a, b)
}

// Name implements Criterion.
func (f Func) Name() string { return "func" }
