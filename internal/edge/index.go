// Package edge provides the edge index of the object graph: for every source
// vertex, a small map from attribute label to target vertex.
//
// Vertices typically carry a handful of attributes, so each vertex keeps its
// outgoing edges in a short slice sorted by label rather than in a hash map.
// Lookups are linear scans over contiguous memory, and enumeration order is
// deterministic for free. A reverse index counts, per target, how many labels
// of each source point at it; the graph facade uses it to drop incoming edges
// when a vertex is deleted.
//
// The index does not know which vertices exist. Checking that both ends of an
// edge are live is the caller's job.
package edge

import (
	"sort"

	"github.com/specialistvlad/sodggo/internal/vertex"
)

// Edge is one labeled outgoing edge of a vertex.
type Edge struct {
	Label  string
	Target vertex.ID
}

// Index stores labeled edges keyed by source vertex.
type Index struct {
	out   map[vertex.ID][]Edge
	in    map[vertex.ID]map[vertex.ID]int // Key: target, Value: source -> number of labels
	total int
}

// New creates a new, empty edge index.
func New() *Index {
	return &Index{
		out: make(map[vertex.ID][]Edge),
		in:  make(map[vertex.ID]map[vertex.ID]int),
	}
}

// find returns the position of label in the sorted slice and whether it is present.
func find(edges []Edge, label string) (int, bool) {
	for i, e := range edges {
		if e.Label == label {
			return i, true
		}
		if e.Label > label {
			return i, false
		}
	}
	return len(edges), false
}

// Put inserts the edge, overwriting any previous target under the same label.
// It returns the previous target and whether one existed.
func (x *Index) Put(src vertex.ID, label string, dst vertex.ID) (vertex.ID, bool) {
	edges := x.out[src]
	i, ok := find(edges, label)
	if ok {
		prev := edges[i].Target
		if prev == dst {
			return prev, true
		}
		edges[i].Target = dst
		x.unref(prev, src)
		x.ref(dst, src)
		return prev, true
	}
	edges = append(edges, Edge{})
	copy(edges[i+1:], edges[i:])
	edges[i] = Edge{Label: label, Target: dst}
	x.out[src] = edges
	x.ref(dst, src)
	x.total++
	return 0, false
}

// Get looks up a single labeled edge.
func (x *Index) Get(src vertex.ID, label string) (vertex.ID, bool) {
	edges := x.out[src]
	if i, ok := find(edges, label); ok {
		return edges[i].Target, true
	}
	return 0, false
}

// Remove deletes one edge. It returns false if there was nothing to remove.
func (x *Index) Remove(src vertex.ID, label string) bool {
	edges := x.out[src]
	i, ok := find(edges, label)
	if !ok {
		return false
	}
	x.unref(edges[i].Target, src)
	edges = append(edges[:i], edges[i+1:]...)
	if len(edges) == 0 {
		delete(x.out, src)
	} else {
		x.out[src] = edges
	}
	x.total--
	return true
}

// Labels returns the outgoing attribute names of src in ascending order.
func (x *Index) Labels(src vertex.ID) []string {
	edges := x.out[src]
	labels := make([]string, len(edges))
	for i, e := range edges {
		labels[i] = e.Label
	}
	return labels
}

// Edges returns a copy of the outgoing edges of src, sorted by label.
func (x *Index) Edges(src vertex.ID) []Edge {
	edges := x.out[src]
	if len(edges) == 0 {
		return nil
	}
	return append([]Edge(nil), edges...)
}

// Referrers returns, in ascending order, the sources that have at least one
// edge pointing at dst.
func (x *Index) Referrers(dst vertex.ID) []vertex.ID {
	refs := x.in[dst]
	ids := make([]vertex.ID, 0, len(refs))
	for src := range refs {
		ids = append(ids, src)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Detach removes every edge whose source or target is id and returns how many
// edges were dropped.
func (x *Index) Detach(id vertex.ID) int {
	dropped := 0
	for _, src := range x.Referrers(id) {
		edges := x.out[src]
		kept := edges[:0]
		for _, e := range edges {
			if e.Target == id {
				dropped++
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			delete(x.out, src)
		} else {
			x.out[src] = kept
		}
	}
	delete(x.in, id)
	for _, e := range x.out[id] {
		x.unref(e.Target, id)
		dropped++
	}
	delete(x.out, id)
	x.total -= dropped
	return dropped
}

// Len returns the total number of edges in the index.
func (x *Index) Len() int {
	return x.total
}

// Clone returns a deep copy of the index.
func (x *Index) Clone() *Index {
	c := &Index{
		out:   make(map[vertex.ID][]Edge, len(x.out)),
		in:    make(map[vertex.ID]map[vertex.ID]int, len(x.in)),
		total: x.total,
	}
	for src, edges := range x.out {
		c.out[src] = append([]Edge(nil), edges...)
	}
	for dst, refs := range x.in {
		m := make(map[vertex.ID]int, len(refs))
		for src, n := range refs {
			m[src] = n
		}
		c.in[dst] = m
	}
	return c
}

func (x *Index) ref(dst, src vertex.ID) {
	refs := x.in[dst]
	if refs == nil {
		refs = make(map[vertex.ID]int)
		x.in[dst] = refs
	}
	refs[src]++
}

func (x *Index) unref(dst, src vertex.ID) {
	refs := x.in[dst]
	if refs == nil {
		return
	}
	refs[src]--
	if refs[src] <= 0 {
		delete(refs, src)
	}
	if len(refs) == 0 {
		delete(x.in, dst)
	}
}
