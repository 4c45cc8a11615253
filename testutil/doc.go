// Package testutil provides deterministic helpers for tests and benchmarks:
// a seeded thread-safe RNG and generators for random particle configurations.
package testutil
