package graph

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/sodggo/internal/edge"
	"github.com/specialistvlad/sodggo/internal/vertex"
)

// Record is the complete exported state of one vertex: its id, its payload,
// and its outgoing edges sorted by label. Serializers consume and produce
// records; ids are only meaningful within one enumeration.
type Record struct {
	ID    vertex.ID
	Full  bool
	Data  []byte
	Edges []edge.Edge
}

// Records enumerates the whole graph in ascending vertex id order, each
// vertex's edges in ascending label order. Two graphs with the same content
// and ids produce identical enumerations.
func (g *Graph) Records() []Record {
	records := make([]Record, 0, g.vertices.Len())
	g.vertices.Each(func(id vertex.ID) bool {
		data, full := g.vertices.Data(id)
		records = append(records, Record{
			ID:    id,
			Full:  full,
			Data:  data,
			Edges: g.edges.Edges(id),
		})
		return true
	})
	return records
}

// Restore builds a new graph from an enumeration. Record ids are remapped to
// freshly allocated ones in ascending order, so the lowest record id becomes
// the root; label structure and payloads are preserved exactly. The input must
// contain a record with id 0 when non-empty, ids must be unique, and every
// edge target must name a record.
func Restore(records []Record, opts ...Option) (*Graph, error) {
	g := New(opts...)
	if len(records) == 0 {
		return g, nil
	}

	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	if sorted[0].ID != vertex.Root {
		return nil, fmt.Errorf("restore: root %s record %w", vertex.Root, ErrNotFound)
	}

	mapping := make(map[vertex.ID]vertex.ID, len(sorted))
	for i, rec := range sorted {
		if i > 0 && sorted[i-1].ID == rec.ID {
			return nil, fmt.Errorf("restore: duplicate record for %s", rec.ID)
		}
		mapping[rec.ID] = g.Add()
		if rec.Full {
			g.vertices.SetData(mapping[rec.ID], rec.Data)
		}
	}
	for _, rec := range sorted {
		src := mapping[rec.ID]
		for _, e := range rec.Edges {
			dst, ok := mapping[e.Target]
			if !ok {
				return nil, fmt.Errorf("restore: edge %s.%s target %s %w", rec.ID, e.Label, e.Target, ErrNotFound)
			}
			if err := g.Put(src, e.Label, dst); err != nil {
				return nil, fmt.Errorf("restore: %w", err)
			}
		}
	}
	return g, nil
}
