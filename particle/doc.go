// Package particle holds the particle records the analysis operates on.
//
// The cluster analysis treats the store as a read-only collaborator: it looks
// particles up by identity and never mutates them. Ownership of particle state
// (positions, velocities, bonds) stays with the surrounding simulation.
package particle
