package merge

import (
	"bytes"
	"fmt"

	"github.com/specialistvlad/sodggo/internal/graph"
	"github.com/specialistvlad/sodggo/internal/vertex"
)

// ref names a primary vertex that either exists already or will be created
// at commit time. For fresh refs, id is an index into plan.fresh.
type ref struct {
	id    vertex.ID
	fresh bool
}

type slotKey struct {
	src   ref
	label string
}

type plannedEdge struct {
	src   ref
	label string
	dst   ref
}

type plannedPayload struct {
	dst  ref
	data []byte
}

// plan is the set of writes a merge will perform, computed without touching
// the primary graph.
type plan struct {
	primary   *graph.Graph
	secondary *graph.Graph
	walk      *addressing
	pins      map[string]vertex.ID

	refs     map[vertex.ID]ref // Key: secondary vertex
	fresh    int
	overlay  map[slotKey]ref
	payloads map[ref][]byte
	edges    []plannedEdge
	writes   []plannedPayload
}

func newPlan(primary, secondary *graph.Graph, w *addressing, pins map[string]vertex.ID) *plan {
	return &plan{
		primary:   primary,
		secondary: secondary,
		walk:      w,
		pins:      pins,
		refs:      make(map[vertex.ID]ref, len(w.order)),
		overlay:   make(map[slotKey]ref),
		payloads:  make(map[ref][]byte),
	}
}

// build maps every reachable secondary vertex to a primary ref, then plans
// the remaining edges and the payloads.
func (p *plan) build() error {
	for _, s := range p.walk.order {
		p.refs[s] = p.locate(s)
	}
	for _, s := range p.walk.order {
		if err := p.planEdges(s); err != nil {
			return err
		}
	}
	for _, s := range p.walk.order {
		if err := p.planPayload(s); err != nil {
			return err
		}
	}
	return nil
}

// locate finds or reserves the primary vertex for secondary vertex s. The
// walk order guarantees that the parent of s has been located already.
func (p *plan) locate(s vertex.ID) ref {
	if target, ok := p.pins[p.walk.address[s].String()]; ok {
		return ref{id: target}
	}
	if s == vertex.Root {
		if p.primary.Len() == 0 {
			return p.reserve()
		}
		return ref{id: vertex.Root}
	}
	via := p.walk.via[s]
	src := p.refs[via.parent]
	if existing, ok := p.lookup(src, via.label); ok {
		return existing
	}
	dst := p.reserve()
	p.bind(src, via.label, dst)
	return dst
}

// planEdges plans every outgoing edge of s that locate did not already
// account for: edges to vertices discovered elsewhere, and edges to pinned
// vertices.
func (p *plan) planEdges(s vertex.ID) error {
	edges, err := p.secondary.Edges(s)
	if err != nil {
		return err
	}
	src := p.refs[s]
	for _, e := range edges {
		via, isTree := p.walk.via[e.Target]
		_, pinned := p.pins[p.walk.address[e.Target].String()]
		if isTree && via.parent == s && via.label == e.Label && !pinned {
			continue
		}
		dst := p.refs[e.Target]
		if existing, ok := p.lookup(src, e.Label); ok {
			if existing != dst {
				return &graph.MergeConflictError{Address: p.walk.address[s], Label: e.Label}
			}
			continue
		}
		p.bind(src, e.Label, dst)
	}
	return nil
}

// planPayload plans the payload write of s, or reports a conflict when the
// primary side already holds different bytes.
func (p *plan) planPayload(s vertex.ID) error {
	data, full, err := p.secondary.Data(s)
	if err != nil {
		return err
	}
	if !full {
		return nil
	}
	dst := p.refs[s]
	existing, has, err := p.payload(dst)
	if err != nil {
		return err
	}
	if has {
		if bytes.Equal(existing, data) {
			return nil
		}
		return &graph.MergeConflictError{
			Address:   p.walk.address[s],
			Primary:   existing,
			Secondary: data,
		}
	}
	p.payloads[dst] = data
	p.writes = append(p.writes, plannedPayload{dst: dst, data: data})
	return nil
}

func (p *plan) reserve() ref {
	r := ref{id: vertex.ID(p.fresh), fresh: true}
	p.fresh++
	return r
}

func (p *plan) bind(src ref, label string, dst ref) {
	p.overlay[slotKey{src: src, label: label}] = dst
	p.edges = append(p.edges, plannedEdge{src: src, label: label, dst: dst})
}

// lookup sees the primary graph as it will look after the planned writes.
func (p *plan) lookup(src ref, label string) (ref, bool) {
	if dst, ok := p.overlay[slotKey{src: src, label: label}]; ok {
		return dst, true
	}
	if src.fresh {
		return ref{}, false
	}
	if id, ok := p.primary.Get(src.id, label); ok {
		return ref{id: id}, true
	}
	return ref{}, false
}

func (p *plan) payload(r ref) ([]byte, bool, error) {
	if data, ok := p.payloads[r]; ok {
		return data, true, nil
	}
	if r.fresh {
		return nil, false, nil
	}
	return p.primary.Data(r.id)
}

// commit applies the plan to the primary graph.
func (p *plan) commit() (Report, error) {
	ids := make([]vertex.ID, p.fresh)
	for i := range ids {
		ids[i] = p.primary.Add()
	}
	resolve := func(r ref) vertex.ID {
		if r.fresh {
			return ids[r.id]
		}
		return r.id
	}
	for _, w := range p.writes {
		if err := p.primary.SetData(resolve(w.dst), w.data); err != nil {
			return Report{}, err
		}
	}
	for _, e := range p.edges {
		if err := p.primary.Put(resolve(e.src), e.label, resolve(e.dst)); err != nil {
			return Report{}, fmt.Errorf("edge %q: %w", e.label, err)
		}
	}
	return Report{
		Visited:       len(p.walk.order),
		AddedVertices: p.fresh,
		AddedEdges:    len(p.edges),
		SetPayloads:   len(p.writes),
	}, nil
}
