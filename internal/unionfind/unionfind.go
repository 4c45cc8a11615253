// Package unionfind implements the alias table behind the cluster analysis:
// a disjoint-set forest over cluster IDs where merges always point from the
// larger ID to the smaller one.
package unionfind

import "github.com/hupe1980/clustergo/cluster"

// Table tracks cluster ID aliases and allocates fresh IDs.
//
// Alias edges strictly decrease: Union records larger -> smaller, so every
// resolve chain is a strictly decreasing ID sequence and must terminate.
// The zero ID base and monotonic allocation mean no ID is ever reused within
// one analysis, including IDs that are later aliased away.
type Table struct {
	alias map[cluster.ID]cluster.ID
	next  cluster.ID
}

// New creates an empty alias table with the ID counter at zero.
func New() *Table {
	return &Table{
		alias: make(map[cluster.ID]cluster.ID),
	}
}

// Fresh returns a never-before-used cluster ID and advances the counter.
func (t *Table) Fresh() cluster.ID {
	id := t.next
	t.next++
	return id
}

// Resolve follows the alias chain from id to its fixed point and returns the
// canonical ID. Reads compress the walked path so later resolves are O(1);
// compression rewrites aliases to a smaller ID and therefore preserves the
// decreasing-edge invariant.
func (t *Table) Resolve(id cluster.ID) cluster.ID {
	root := id
	for {
		next, ok := t.alias[root]
		if !ok {
			break
		}
		root = next
	}

	// Path compression.
	for id != root {
		next := t.alias[id]
		t.alias[id] = root
		id = next
	}

	return root
}

// Union records that a and b identify the same cluster. The smaller canonical
// ID survives; the larger one is aliased to it. Returns the surviving ID.
func (t *Table) Union(a, b cluster.ID) cluster.ID {
	ra := t.Resolve(a)
	rb := t.Resolve(b)
	if ra == rb {
		return ra
	}
	if ra < rb {
		t.alias[rb] = ra
		return ra
	}
	t.alias[ra] = rb
	return rb
}

// Aliased reports whether id has been folded into another cluster.
func (t *Table) Aliased(id cluster.ID) bool {
	_, ok := t.alias[id]
	return ok
}

// Len returns the number of recorded alias edges.
func (t *Table) Len() int {
	return len(t.alias)
}

// Allocated returns how many IDs have been handed out.
func (t *Table) Allocated() int {
	return int(t.next)
}

// Reset discards all aliases and restarts ID allocation from zero.
func (t *Table) Reset() {
	t.alias = make(map[cluster.ID]cluster.ID)
	t.next = 0
}
