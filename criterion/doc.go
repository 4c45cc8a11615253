// Package criterion defines the pluggable neighbor predicate the cluster
// analysis is parameterized over, plus the standard criteria: distance with
// minimum image convention, bond existence, and short-range pair energy.
//
// The analysis core only ever calls Decide; it never decides adjacency itself.
package criterion
