// Package merge combines independently built object graphs, which is the
// linking step of the compilation pipeline.
//
// Vertex ids of two graphs are unrelated, so identity is carried by address:
// the label path from the secondary root to a vertex. Every vertex reachable
// from the secondary root gets exactly one address, the first one found by a
// breadth-first walk that visits labels in ascending order. The same address
// is then walked (and extended where missing) in the primary graph, starting
// from the mapped entry point.
//
// A merge runs in two phases. The plan phase reads both graphs, decides which
// primary vertices to reuse and which to create, and detects every conflict.
// The commit phase applies the plan and cannot fail. A merge that reports a
// conflict therefore leaves the primary graph untouched.
package merge

import (
	"fmt"

	"github.com/specialistvlad/sodggo/internal/graph"
	"github.com/specialistvlad/sodggo/internal/path"
	"github.com/specialistvlad/sodggo/internal/vertex"
)

// Entry maps an address in the secondary graph to an existing primary vertex.
// Without an entry for the empty address, the secondary root maps to the
// primary root.
type Entry struct {
	Address path.Path
	Target  vertex.ID
}

// Report summarizes what a merge changed in the primary graph.
type Report struct {
	Visited       int // secondary vertices reachable from its root
	AddedVertices int
	AddedEdges    int
	SetPayloads   int
}

// Merge merges secondary into primary. The secondary graph is only read.
func Merge(primary, secondary *graph.Graph, entries ...Entry) (Report, error) {
	if secondary.Len() == 0 {
		return Report{}, nil
	}

	pins := make(map[string]vertex.ID, len(entries))
	for _, e := range entries {
		key := e.Address.String()
		if _, dup := pins[key]; dup {
			return Report{}, fmt.Errorf("merge: duplicate entry point %q", key)
		}
		if !primary.Has(e.Target) {
			return Report{}, fmt.Errorf("merge: entry point %q target %s %w", key, e.Target, graph.ErrNotFound)
		}
		pins[key] = e.Target
	}

	w, err := walk(secondary)
	if err != nil {
		return Report{}, fmt.Errorf("merge: %w", err)
	}
	p := newPlan(primary, secondary, w, pins)
	if err := p.build(); err != nil {
		return Report{}, fmt.Errorf("merge: %w", err)
	}

	before := primary.Len()
	report, err := p.commit()
	if err != nil {
		return Report{}, fmt.Errorf("merge: commit: %w", err)
	}
	primary.Logger().Debug("Merged graph.",
		"visited", report.Visited,
		"unreachable", secondary.Len()-report.Visited,
		"vertices_before", before,
		"vertices_after", primary.Len(),
		"added_edges", report.AddedEdges,
		"set_payloads", report.SetPayloads,
	)
	return report, nil
}

// treeEdge is the edge through which the walk first reached a vertex.
type treeEdge struct {
	parent vertex.ID
	label  string
}

// addressing is the result of walking the secondary graph: visit order,
// memoized addresses, and the edge that discovered each vertex.
type addressing struct {
	order   []vertex.ID
	address map[vertex.ID]path.Path
	via     map[vertex.ID]treeEdge
}

// walk computes the address of every vertex reachable from the root of g.
func walk(g *graph.Graph) (*addressing, error) {
	w := &addressing{
		address: map[vertex.ID]path.Path{vertex.Root: path.Root},
		via:     make(map[vertex.ID]treeEdge),
	}
	queue := []vertex.ID{vertex.Root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		w.order = append(w.order, cur)

		edges, err := g.Edges(cur)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			if _, seen := w.address[e.Target]; seen {
				continue
			}
			w.address[e.Target] = w.address[cur].Child(e.Label)
			w.via[e.Target] = treeEdge{parent: cur, label: e.Label}
			queue = append(queue, e.Target)
		}
	}
	return w, nil
}
