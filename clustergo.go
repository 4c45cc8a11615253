package clustergo

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/clustergo/cluster"
	"github.com/hupe1980/clustergo/criterion"
	"github.com/hupe1980/clustergo/internal/unionfind"
	"github.com/hupe1980/clustergo/particle"
)

// Rough per-particle footprint of the three bookkeeping maps, used for
// resource reservations. Deliberately generous.
const bytesPerParticle = 160

// ClusterStructure computes and holds the cluster partition of a particle set.
//
// It is an explicitly owned value: construct one per particle store, run
// AnalyzePair, then read the result through the accessor methods. A new
// AnalyzePair call discards the previous result entirely; no state survives
// across analyses.
//
// All methods are safe for concurrent use. AnalyzePair itself is a single
// bounded, synchronous computation; readers observe either the previous
// complete result or the new one, never a half-built state.
type ClusterStructure struct {
	store *particle.Store
	opts  options

	mu          sync.RWMutex
	assignments map[particle.ID]cluster.ID
	clusters    map[cluster.ID]*cluster.Cluster
	ids         *unionfind.Table
}

// New creates a ClusterStructure over the given particle store.
func New(store *particle.Store, optFns ...Option) (*ClusterStructure, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	return &ClusterStructure{
		store:       store,
		opts:        applyOptions(optFns),
		assignments: make(map[particle.ID]cluster.ID),
		clusters:    make(map[cluster.ID]*cluster.Cluster),
		ids:         unionfind.New(),
	}, nil
}

// Store returns the particle store this analysis reads from.
func (cs *ClusterStructure) Store() *particle.Store {
	return cs.store
}

// AnalyzePair rebuilds the cluster structure from scratch: it scans every
// unordered pair of live particles, connects the pairs the criterion accepts,
// and materializes the final clusters.
//
// Two particles are in the same final cluster iff a chain of pairwise
// neighbor relations connects them. The scan is O(n^2) in the number of live
// particles; a criterion backed by a spatial index is the caller's lever for
// cheaper adjacency tests.
//
// On error the previous result is discarded and the structure is left empty:
// treat any returned error as "analysis not available".
func (cs *ClusterStructure) AnalyzePair(ctx context.Context, crit criterion.Criterion) error {
	start := time.Now()
	n := cs.store.Len()

	err := cs.analyzePair(ctx, crit)

	cs.opts.metricsCollector.RecordAnalyze(n, cs.Len(), time.Since(start), err)
	name := "nil"
	if crit != nil {
		name = crit.Name()
	}
	cs.opts.logger.LogAnalyze(ctx, name, n, cs.Len(), time.Since(start), err)
	return err
}

func (cs *ClusterStructure) analyzePair(ctx context.Context, crit criterion.Criterion) error {
	if crit == nil {
		return ErrNilCriterion
	}

	rc := cs.opts.controller
	if rc != nil {
		if err := rc.AcquireAnalysis(ctx); err != nil {
			return err
		}
		defer rc.ReleaseAnalysis()

		estimate := int64(cs.store.Len()) * bytesPerParticle
		if err := rc.AcquireMemory(ctx, estimate); err != nil {
			return err
		}
		defer rc.ReleaseMemory(estimate)
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	// Clear first so a failure mid-scan never exposes a stale or half-built
	// structure through the read interface.
	cs.clear()

	ids := cs.store.IDs()
	ps := make([]particle.Particle, len(ids))
	for i, id := range ids {
		p, ok := cs.store.Get(id)
		if !ok {
			return &ErrUnknownParticle{ID: id}
		}
		ps[i] = p
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if cs.opts.parallelism > 1 {
		if err := cs.scanParallel(ctx, crit, ps); err != nil {
			cs.clear()
			return err
		}
	} else {
		if err := cs.scanSerial(ctx, crit, ps); err != nil {
			cs.clear()
			return err
		}
	}

	cs.mergeClusters(ids)
	return nil
}

// scanSerial visits all pairs {i<j} in ascending order and links accepted ones.
func (cs *ClusterStructure) scanSerial(ctx context.Context, crit criterion.Criterion, ps []particle.Particle) error {
	for i := range ps {
		if err := ctx.Err(); err != nil {
			return err
		}
		for j := i + 1; j < len(ps); j++ {
			ok, err := crit.Decide(ps[i], ps[j])
			if err != nil {
				return &ErrCriterion{A: ps[i].ID, B: ps[j].ID, cause: err}
			}
			if ok {
				cs.link(ps[i].ID, ps[j].ID)
			}
		}
	}
	return nil
}

// scanParallel evaluates the criterion row-wise across an errgroup, then
// applies the discovered edges serially in the same (i asc, j asc) order the
// serial scan uses. Only the pure evaluation runs concurrently; the
// union-find state has a single writer, and the resulting partition is
// identical to a serial scan.
func (cs *ClusterStructure) scanParallel(ctx context.Context, crit criterion.Criterion, ps []particle.Particle) error {
	rows := make([][]int, len(ps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cs.opts.parallelism)

	for i := range ps {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var row []int
			for j := i + 1; j < len(ps); j++ {
				ok, err := crit.Decide(ps[i], ps[j])
				if err != nil {
					return &ErrCriterion{A: ps[i].ID, B: ps[j].ID, cause: err}
				}
				if ok {
					row = append(row, j)
				}
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, row := range rows {
		for _, j := range row {
			cs.link(ps[i].ID, ps[j].ID)
		}
	}
	return nil
}

// link applies the union-find case table for one accepted neighbor pair.
func (cs *ClusterStructure) link(a, b particle.ID) {
	ca, aok := cs.assignments[a]
	cb, bok := cs.assignments[b]

	switch {
	case !aok && !bok:
		// Both particles form the same, new cluster.
		cid := cs.ids.Fresh()
		cs.assignments[a] = cid
		cs.assignments[b] = cid
	case !aok:
		cs.assignments[a] = cs.ids.Resolve(cb)
	case !bok:
		cs.assignments[b] = cs.ids.Resolve(ca)
	default:
		// Both assigned. If the canonical ids differ, record an alias from
		// the larger to the smaller; connected clusters merge later. Alias
		// edges must point downward so resolution terminates.
		cs.ids.Union(ca, cb)
	}
}

// mergeClusters finalizes membership after the scan, in two passes: first
// canonicalize every assignment, then fill the member lists. One pass would
// file particles under ids that later turn out to be aliased.
func (cs *ClusterStructure) mergeClusters(ids []particle.ID) {
	if cs.opts.singletonClusters {
		for _, pid := range ids {
			if _, ok := cs.assignments[pid]; !ok {
				cs.assignments[pid] = cs.ids.Fresh()
			}
		}
	}

	// Pass 1: relabel to canonical ids and create the cluster entries.
	for _, pid := range ids {
		cid, ok := cs.assignments[pid]
		if !ok {
			continue
		}
		canonical := cs.ids.Resolve(cid)
		cs.assignments[pid] = canonical
		if _, ok := cs.clusters[canonical]; !ok {
			cs.clusters[canonical] = cluster.New(canonical)
		}
	}

	// Pass 2: fill the member lists in ascending particle id order.
	for _, pid := range ids {
		if cid, ok := cs.assignments[pid]; ok {
			cs.clusters[cid].Add(pid)
		}
	}
}

// clear resets all analysis state, including the id counter.
// Callers must hold the write lock.
func (cs *ClusterStructure) clear() {
	cs.assignments = make(map[particle.ID]cluster.ID)
	cs.clusters = make(map[cluster.ID]*cluster.Cluster)
	cs.ids.Reset()
}

// ClusterIDOf returns the canonical cluster id of a particle, or false if the
// particle is in no cluster (isolated, unknown, or no analysis has run).
func (cs *ClusterStructure) ClusterIDOf(pid particle.ID) (cluster.ID, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	cid, ok := cs.assignments[pid]
	return cid, ok
}

// MembersOf returns the member list of a cluster in encounter order.
func (cs *ClusterStructure) MembersOf(cid cluster.ID) ([]particle.ID, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	c, ok := cs.clusters[cid]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrClusterNotFound, cid)
	}
	return c.Members(), nil
}

// Cluster returns the cluster with the given canonical id.
// The returned value is owned by the structure; treat it as read-only.
func (cs *ClusterStructure) Cluster(cid cluster.ID) (*cluster.Cluster, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	c, ok := cs.clusters[cid]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrClusterNotFound, cid)
	}
	return c, nil
}

// ClusterIDs returns all canonical cluster ids in ascending order.
func (cs *ClusterStructure) ClusterIDs() []cluster.ID {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	ids := make([]cluster.ID, 0, len(cs.clusters))
	for cid := range cs.clusters {
		ids = append(ids, cid)
	}
	slices.Sort(ids)
	return ids
}

// Clusters returns an iterator over all clusters in ascending id order.
func (cs *ClusterStructure) Clusters() iter.Seq2[cluster.ID, *cluster.Cluster] {
	return func(yield func(cluster.ID, *cluster.Cluster) bool) {
		for _, cid := range cs.ClusterIDs() {
			c, err := cs.Cluster(cid)
			if err != nil {
				continue
			}
			if !yield(cid, c) {
				return
			}
		}
	}
}

// Len returns the number of clusters in the most recent analysis.
func (cs *ClusterStructure) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return len(cs.clusters)
}
