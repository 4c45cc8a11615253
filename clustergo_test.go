package clustergo

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/clustergo/cluster"
	"github.com/hupe1980/clustergo/criterion"
	"github.com/hupe1980/clustergo/particle"
	"github.com/hupe1980/clustergo/testutil"
)

// pairCriterion accepts exactly the listed pairs, in either order.
func pairCriterion(pairs ...[2]particle.ID) criterion.Criterion {
	set := make(map[[2]particle.ID]bool, len(pairs)*2)
	for _, p := range pairs {
		set[p] = true
		set[[2]particle.ID{p[1], p[0]}] = true
	}
	return criterion.Func(func(a, b particle.Particle) (bool, error) {
		return set[[2]particle.ID{a.ID, b.ID}], nil
	})
}

func newStore(t *testing.T, ids ...particle.ID) *particle.Store {
	t.Helper()
	store := particle.NewStore()
	for _, id := range ids {
		require.NoError(t, store.Set(particle.Particle{ID: id}))
	}
	return store
}

// partition returns the cluster member lists, each sorted, ordered by their
// smallest member. Cluster id values are allocation-order dependent; the
// partition is the invariant worth comparing.
func partition(cs *ClusterStructure) [][]particle.ID {
	var out [][]particle.ID
	for _, c := range cs.Clusters() {
		members := c.Members()
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
		out = append(out, members)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func TestAnalyzePair(t *testing.T) {
	ctx := context.Background()

	t.Run("two independent pairs", func(t *testing.T) {
		store := newStore(t, 1, 2, 3, 4)
		cs, err := New(store)
		require.NoError(t, err)

		require.NoError(t, cs.AnalyzePair(ctx, pairCriterion([2]particle.ID{1, 2}, [2]particle.ID{3, 4})))

		assert.Equal(t, 2, cs.Len())
		assert.Equal(t, [][]particle.ID{{1, 2}, {3, 4}}, partition(cs))
	})

	t.Run("transitive chain", func(t *testing.T) {
		store := newStore(t, 1, 2, 3)
		cs, err := New(store)
		require.NoError(t, err)

		// (1,3) is not a neighbor pair, but 2 connects them.
		require.NoError(t, cs.AnalyzePair(ctx, pairCriterion([2]particle.ID{1, 2}, [2]particle.ID{2, 3})))

		assert.Equal(t, 1, cs.Len())
		assert.Equal(t, [][]particle.ID{{1, 2, 3}}, partition(cs))

		c1, ok1 := cs.ClusterIDOf(1)
		c3, ok3 := cs.ClusterIDOf(3)
		require.True(t, ok1)
		require.True(t, ok3)
		assert.Equal(t, c1, c3)
	})

	t.Run("late merge via alias", func(t *testing.T) {
		store := newStore(t, 1, 2, 3, 4, 5)
		cs, err := New(store)
		require.NoError(t, err)

		// In ascending pair order, (1,2) and (3,4) form two clusters before
		// (1,4) is reached, so the second cluster must be folded into the
		// first during the merge pass.
		require.NoError(t, cs.AnalyzePair(ctx, pairCriterion(
			[2]particle.ID{1, 2},
			[2]particle.ID{3, 4},
			[2]particle.ID{1, 4},
		)))

		assert.Equal(t, 1, cs.Len())
		assert.Equal(t, [][]particle.ID{{1, 2, 3, 4}}, partition(cs))

		// Particle 5 is isolated and excluded from the output.
		_, ok := cs.ClusterIDOf(5)
		assert.False(t, ok)
	})

	t.Run("empty particle set", func(t *testing.T) {
		cs, err := New(particle.NewStore())
		require.NoError(t, err)

		require.NoError(t, cs.AnalyzePair(ctx, pairCriterion()))
		assert.Equal(t, 0, cs.Len())
		assert.Empty(t, cs.ClusterIDs())
	})

	t.Run("rerun discards previous result", func(t *testing.T) {
		store := newStore(t, 1, 2, 3)
		cs, err := New(store)
		require.NoError(t, err)

		all := criterion.Func(func(a, b particle.Particle) (bool, error) { return true, nil })
		none := criterion.Func(func(a, b particle.Particle) (bool, error) { return false, nil })

		require.NoError(t, cs.AnalyzePair(ctx, all))
		require.Equal(t, 1, cs.Len())

		require.NoError(t, cs.AnalyzePair(ctx, none))
		assert.Equal(t, 0, cs.Len())
		for _, pid := range []particle.ID{1, 2, 3} {
			_, ok := cs.ClusterIDOf(pid)
			assert.False(t, ok, "stale cluster id for particle %d", pid)
		}
	})

	t.Run("singleton clusters policy", func(t *testing.T) {
		store := newStore(t, 1, 2, 3)
		cs, err := New(store, WithSingletonClusters(true))
		require.NoError(t, err)

		require.NoError(t, cs.AnalyzePair(ctx, pairCriterion([2]particle.ID{1, 2})))

		assert.Equal(t, 2, cs.Len())
		assert.Equal(t, [][]particle.ID{{1, 2}, {3}}, partition(cs))
	})

	t.Run("nil criterion", func(t *testing.T) {
		cs, err := New(newStore(t, 1))
		require.NoError(t, err)

		assert.ErrorIs(t, cs.AnalyzePair(ctx, nil), ErrNilCriterion)
	})

	t.Run("criterion error aborts and clears", func(t *testing.T) {
		store := newStore(t, 1, 2, 3)
		cs, err := New(store)
		require.NoError(t, err)

		require.NoError(t, cs.AnalyzePair(ctx, pairCriterion([2]particle.ID{1, 2})))
		require.Equal(t, 1, cs.Len())

		cause := errors.New("bad predicate")
		failing := criterion.Func(func(a, b particle.Particle) (bool, error) {
			if a.ID == 2 && b.ID == 3 {
				return false, cause
			}
			return true, nil
		})

		err = cs.AnalyzePair(ctx, failing)
		require.Error(t, err)

		var ce *ErrCriterion
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, particle.ID(2), ce.A)
		assert.Equal(t, particle.ID(3), ce.B)
		assert.ErrorIs(t, err, cause)

		// Analysis is not available; nothing of the old result remains.
		assert.Equal(t, 0, cs.Len())
		_, ok := cs.ClusterIDOf(1)
		assert.False(t, ok)
	})

	t.Run("canceled context", func(t *testing.T) {
		cs, err := New(newStore(t, 1, 2))
		require.NoError(t, err)

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		assert.ErrorIs(t, cs.AnalyzePair(cctx, pairCriterion()), context.Canceled)
	})
}

func TestReadViews(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, 1, 2, 3, 4)
	cs, err := New(store)
	require.NoError(t, err)

	require.NoError(t, cs.AnalyzePair(ctx, pairCriterion([2]particle.ID{1, 2}, [2]particle.ID{3, 4})))

	t.Run("members of unknown cluster", func(t *testing.T) {
		_, err := cs.MembersOf(cluster.ID(999))
		assert.ErrorIs(t, err, ErrClusterNotFound)

		_, err = cs.Cluster(cluster.ID(999))
		assert.ErrorIs(t, err, ErrClusterNotFound)
	})

	t.Run("cluster ids ascending", func(t *testing.T) {
		ids := cs.ClusterIDs()
		require.Len(t, ids, 2)
		assert.Less(t, ids[0], ids[1])
	})

	t.Run("members match assignments", func(t *testing.T) {
		for cid, c := range cs.Clusters() {
			members, err := cs.MembersOf(cid)
			require.NoError(t, err)
			assert.Equal(t, c.Members(), members)
			for _, pid := range members {
				got, ok := cs.ClusterIDOf(pid)
				require.True(t, ok)
				assert.Equal(t, cid, got)
			}
		}
	})
}

func TestDeterminism(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(42)
	box := particle.NewBox(10, 10, 10)

	store := particle.NewStore()
	require.NoError(t, rng.Gas(store, 200, box))

	cs, err := New(store)
	require.NoError(t, err)

	crit, err := criterion.NewDistance(box, 1.5)
	require.NoError(t, err)

	require.NoError(t, cs.AnalyzePair(ctx, crit))
	first := partition(cs)

	require.NoError(t, cs.AnalyzePair(ctx, crit))
	assert.Equal(t, first, partition(cs))
}

func TestParallelMatchesSerial(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(7)
	box := particle.NewBox(10, 10, 10)

	store := particle.NewStore()
	require.NoError(t, rng.Gas(store, 300, box))

	crit, err := criterion.NewDistance(box, 1.2)
	require.NoError(t, err)

	serial, err := New(store)
	require.NoError(t, err)
	require.NoError(t, serial.AnalyzePair(ctx, crit))

	parallel, err := New(store, WithParallelism(4))
	require.NoError(t, err)
	require.NoError(t, parallel.AnalyzePair(ctx, crit))

	assert.Equal(t, partition(serial), partition(parallel))
}

// TestEquivalenceClosure checks the core contract against a reference BFS:
// two particles share a cluster iff a chain of neighbor edges connects them.
func TestEquivalenceClosure(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(1234)
	box := particle.NewBox(8, 8, 8)

	store := particle.NewStore()
	require.NoError(t, rng.Gas(store, 150, box))

	crit, err := criterion.NewDistance(box, 1.4)
	require.NoError(t, err)

	cs, err := New(store)
	require.NoError(t, err)
	require.NoError(t, cs.AnalyzePair(ctx, crit))

	// Reference: BFS over explicit adjacency.
	ids := store.IDs()
	adj := make(map[particle.ID][]particle.ID)
	hasEdge := make(map[particle.ID]bool)
	for i, a := range ids {
		pa, _ := store.Get(a)
		for _, b := range ids[i+1:] {
			pb, _ := store.Get(b)
			ok, err := crit.Decide(pa, pb)
			require.NoError(t, err)
			if ok {
				adj[a] = append(adj[a], b)
				adj[b] = append(adj[b], a)
				hasEdge[a] = true
				hasEdge[b] = true
			}
		}
	}

	component := make(map[particle.ID]int)
	comp := 0
	for _, id := range ids {
		if _, seen := component[id]; seen || !hasEdge[id] {
			continue
		}
		comp++
		queue := []particle.ID{id}
		component[id] = comp
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, next := range adj[cur] {
				if _, seen := component[next]; !seen {
					component[next] = comp
					queue = append(queue, next)
				}
			}
		}
	}

	for _, a := range ids {
		ca, oka := cs.ClusterIDOf(a)
		assert.Equal(t, hasEdge[a], oka, "particle %d assignment presence", a)
		for _, b := range ids {
			if a >= b {
				continue
			}
			cb, okb := cs.ClusterIDOf(b)
			sameRef := component[a] != 0 && component[a] == component[b]
			sameGot := oka && okb && ca == cb
			assert.Equal(t, sameRef, sameGot, "particles %d and %d", a, b)
		}
	}

	// Partition property: member lists are disjoint and cover exactly the
	// particles with at least one edge.
	seen := make(map[particle.ID]bool)
	for _, c := range cs.Clusters() {
		for _, pid := range c.Members() {
			assert.False(t, seen[pid], "particle %d in two clusters", pid)
			seen[pid] = true
		}
	}
	for _, id := range ids {
		assert.Equal(t, hasEdge[id], seen[id], "coverage of particle %d", id)
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilStore)
}
