package graph

import (
	"fmt"

	"github.com/specialistvlad/sodggo/internal/path"
	"github.com/specialistvlad/sodggo/internal/vertex"
)

// Resolve walks p from start and returns the vertex reached after the last
// label.
//
// For each label, a direct edge is followed when present. Otherwise the
// parent edge is followed and the same label is retried on the parent. The
// climb fails with ErrCycle when it revisits a vertex or takes more hops than
// the configured bound, and with ErrAttributeNotFound when a vertex without a
// parent edge is reached. Whether the result carries a payload is not
// checked.
func (g *Graph) Resolve(start vertex.ID, p path.Path) (vertex.ID, error) {
	if !g.vertices.Has(start) {
		return 0, fmt.Errorf("resolve %q from %s: %w", p.String(), start, ErrNotFound)
	}
	cur := start
	for step, label := range p {
		next, err := g.lookup(cur, label)
		if err != nil {
			return 0, fmt.Errorf("resolve %q from %s, step %d: %w", p.String(), start, step, err)
		}
		cur = next
	}
	return cur, nil
}

// ResolveString parses raw and resolves it from start.
func (g *Graph) ResolveString(start vertex.ID, raw string) (vertex.ID, error) {
	p, err := path.Parse(raw)
	if err != nil {
		return 0, err
	}
	return g.Resolve(start, p)
}

// lookup finds label on v, climbing parent edges as needed.
func (g *Graph) lookup(v vertex.ID, label string) (vertex.ID, error) {
	var seen map[vertex.ID]struct{}
	at := v
	for hops := 0; ; hops++ {
		if target, ok := g.edges.Get(at, label); ok {
			return target, nil
		}
		parent, ok := g.edges.Get(at, g.parentLabel)
		if !ok {
			return 0, fmt.Errorf("%w: %q on %s", ErrAttributeNotFound, label, v)
		}
		if hops >= g.maxHops {
			return 0, fmt.Errorf("%w: %q on %s not found within %d parent hops", ErrCycle, label, v, g.maxHops)
		}
		if seen == nil {
			seen = map[vertex.ID]struct{}{at: {}}
		}
		if _, loop := seen[parent]; loop {
			return 0, fmt.Errorf("%w: %q on %s, parent chain returns to %s", ErrCycle, label, v, parent)
		}
		seen[parent] = struct{}{}
		at = parent
	}
}
