// Package cluster defines the cluster value produced by the analysis: an
// ordered member list with a roaring-bitmap membership index, plus a few
// per-cluster observables (center of mass, radius of gyration, longest
// distance) computed against the particle store.
package cluster
