// Package clustergo provides embedded cluster-structure analysis for
// particle-based simulations.
//
// Given a particle store and a pairwise neighbor criterion, ClusterStructure
// partitions the particles into connected components ("clusters"): two
// particles end up in the same cluster exactly when a chain of pairwise
// neighbor relations connects them. Membership is computed with an online
// union-find built during a single scan over all particle pairs, followed by
// a merge pass that canonicalizes every assignment.
//
// # Quick Start
//
//	store := particle.NewStore()
//	// ... fill store from the simulation ...
//
//	cs, _ := clustergo.New(store)
//	crit, _ := criterion.NewDistance(particle.NewBox(10, 10, 10), 1.2)
//	if err := cs.AnalyzePair(ctx, crit); err != nil {
//	    log.Fatal(err)
//	}
//
//	for id, c := range cs.Clusters() {
//	    fmt.Println(id, c.Members())
//	}
//
// # Neighbor Criteria
//
// The analysis never decides adjacency itself; that is the criterion's job.
// The criterion package ships distance (minimum image convention), bond and
// short-range-energy criteria, and any type implementing criterion.Criterion
// can be supplied, e.g. one backed by a spatial index to beat the quadratic
// scan's constant factor.
//
// # Isolated Particles
//
// By default particles with no neighbor edge belong to no cluster and are
// absent from all read views. WithSingletonClusters(true) materializes a
// one-member cluster per isolated particle instead.
//
// # Persistence
//
// A finished analysis can be persisted as a compact binary snapshot
// (optionally zstd- or lz4-compressed) to any io.Writer or to a
// blobstore.Store (local filesystem, S3, MinIO).
package clustergo
