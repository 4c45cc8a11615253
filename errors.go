package clustergo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/clustergo/particle"
)

var (
	// ErrNilStore is returned when a ClusterStructure is created without a
	// particle store.
	ErrNilStore = errors.New("particle store is nil")

	// ErrNilCriterion is returned when AnalyzePair is called without a
	// criterion.
	ErrNilCriterion = errors.New("criterion is nil")

	// ErrClusterNotFound is returned when a cluster ID does not exist in the
	// most recent analysis.
	ErrClusterNotFound = errors.New("cluster not found")
)

// ErrUnknownParticle indicates that an identity was referenced that is not in
// the live particle set. This is a programmer error in the caller, surfaced
// rather than skipped so union-find invariants cannot be silently corrupted.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrUnknownParticle struct {
	ID    particle.ID
	cause error
}

func (e *ErrUnknownParticle) Error() string {
	return fmt.Sprintf("unknown particle identity: %d", e.ID)
}

func (e *ErrUnknownParticle) Unwrap() error { return e.cause }

// ErrCriterion wraps a failure reported by the neighbor criterion for a
// specific pair. The criterion's error is surfaced unchanged via Unwrap.
type ErrCriterion struct {
	A, B  particle.ID
	cause error
}

func (e *ErrCriterion) Error() string {
	return fmt.Sprintf("criterion failed for pair (%d, %d): %v", e.A, e.B, e.cause)
}

func (e *ErrCriterion) Unwrap() error { return e.cause }
