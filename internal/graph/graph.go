package graph

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/sodggo/internal/edge"
	"github.com/specialistvlad/sodggo/internal/path"
	"github.com/specialistvlad/sodggo/internal/vertex"
)

const (
	// DefaultParentLabel is the reserved label followed when an attribute is
	// missing on a vertex.
	DefaultParentLabel = "parent"

	// DefaultMaxParentHops bounds how far resolution climbs parent edges
	// while looking for a single label.
	DefaultMaxParentHops = 1024
)

// Graph is a directed, labeled object graph. The zero value is not usable;
// create graphs with New.
type Graph struct {
	vertices *vertex.Store
	edges    *edge.Index

	parentLabel string
	maxHops     int
	logger      *slog.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for debug output of maintenance passes.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithParentLabel overrides the reserved parent label.
func WithParentLabel(label string) Option {
	return func(g *Graph) {
		if label != "" {
			g.parentLabel = label
		}
	}
}

// WithMaxParentHops overrides the bound on parent hops per label.
func WithMaxParentHops(n int) Option {
	return func(g *Graph) {
		if n > 0 {
			g.maxHops = n
		}
	}
}

// New creates a new, empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		vertices:    vertex.New(),
		edges:       edge.New(),
		parentLabel: DefaultParentLabel,
		maxHops:     DefaultMaxParentHops,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Options returns the options this graph was configured with, so that
// derived graphs (clones, restored copies) behave the same way.
func (g *Graph) Options() []Option {
	return []Option{
		WithLogger(g.logger),
		WithParentLabel(g.parentLabel),
		WithMaxParentHops(g.maxHops),
	}
}

// Logger returns the graph's logger.
func (g *Graph) Logger() *slog.Logger {
	return g.logger
}

// ParentLabel returns the reserved label used for inheritance fallback.
func (g *Graph) ParentLabel() string {
	return g.parentLabel
}

// Add allocates a fresh vertex and returns its id. The first vertex of an
// empty graph is always vertex.Root.
func (g *Graph) Add() vertex.ID {
	return g.vertices.Add()
}

// Has reports whether the vertex exists.
func (g *Graph) Has(id vertex.ID) bool {
	return g.vertices.Has(id)
}

// Len returns the number of vertices.
func (g *Graph) Len() int {
	return g.vertices.Len()
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return g.edges.Len()
}

// IDs returns all vertex ids in ascending order.
func (g *Graph) IDs() []vertex.ID {
	return g.vertices.IDs()
}

// Remove deletes a vertex together with every edge that starts or ends at it.
// The root can only be removed when it is the last vertex.
func (g *Graph) Remove(id vertex.ID) error {
	if !g.vertices.Has(id) {
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	if id == vertex.Root && g.vertices.Len() > 1 {
		return fmt.Errorf("remove %s: %w", id, ErrRootInUse)
	}
	g.edges.Detach(id)
	g.vertices.Remove(id)
	return nil
}

// SetData replaces the payload of a vertex as a whole.
func (g *Graph) SetData(id vertex.ID, data []byte) error {
	if !g.vertices.SetData(id, data) {
		return fmt.Errorf("set data on %s: %w", id, ErrNotFound)
	}
	return nil
}

// Data returns a copy of the payload of a vertex. The boolean is false when
// the vertex has not been dataized yet.
func (g *Graph) Data(id vertex.ID) ([]byte, bool, error) {
	if !g.vertices.Has(id) {
		return nil, false, fmt.Errorf("data of %s: %w", id, ErrNotFound)
	}
	data, ok := g.vertices.Data(id)
	return data, ok, nil
}

// Put inserts the edge src --label--> dst, replacing any previous target of
// src under the same label.
func (g *Graph) Put(src vertex.ID, label string, dst vertex.ID) error {
	if err := path.ValidateLabel(label); err != nil {
		return fmt.Errorf("put %s.%s: %w: %v", src, label, ErrInvalidLabel, err)
	}
	if !g.vertices.Has(src) {
		return fmt.Errorf("put %s.%s: source %w", src, label, ErrNotFound)
	}
	if !g.vertices.Has(dst) {
		return fmt.Errorf("put %s.%s: target %s %w", src, label, dst, ErrNotFound)
	}
	g.edges.Put(src, label, dst)
	return nil
}

// Get returns the target of the edge src --label-->, if any. Parent edges
// are not consulted; use Resolve for inheritance-aware lookup.
func (g *Graph) Get(src vertex.ID, label string) (vertex.ID, bool) {
	if !g.vertices.Has(src) {
		return 0, false
	}
	return g.edges.Get(src, label)
}

// Labels returns the outgoing labels of a vertex in ascending order.
func (g *Graph) Labels(src vertex.ID) ([]string, error) {
	if !g.vertices.Has(src) {
		return nil, fmt.Errorf("labels of %s: %w", src, ErrNotFound)
	}
	return g.edges.Labels(src), nil
}

// Edges returns the outgoing edges of a vertex sorted by label.
func (g *Graph) Edges(src vertex.ID) ([]edge.Edge, error) {
	if !g.vertices.Has(src) {
		return nil, fmt.Errorf("edges of %s: %w", src, ErrNotFound)
	}
	return g.edges.Edges(src), nil
}

// Referrers returns the vertices with at least one edge pointing at dst.
func (g *Graph) Referrers(dst vertex.ID) ([]vertex.ID, error) {
	if !g.vertices.Has(dst) {
		return nil, fmt.Errorf("referrers of %s: %w", dst, ErrNotFound)
	}
	return g.edges.Referrers(dst), nil
}

// Unbind removes the edge src --label-->. Removing an absent edge succeeds.
func (g *Graph) Unbind(src vertex.ID, label string) {
	g.edges.Remove(src, label)
}

// Clone returns a deep copy of the graph, preserving vertex ids.
func (g *Graph) Clone() *Graph {
	c := New(g.Options()...)
	c.vertices = g.vertices.Clone()
	c.edges = g.edges.Clone()
	return c
}

// Validate checks every structural invariant and reports the first violation.
// A graph only mutated through this package always validates; the check is
// meant for tests and for graphs assembled from untrusted input.
func (g *Graph) Validate() error {
	if g.vertices.Len() == 0 {
		if g.edges.Len() != 0 {
			return fmt.Errorf("empty graph holds %d edges", g.edges.Len())
		}
		return nil
	}
	if !g.vertices.Has(vertex.Root) {
		return fmt.Errorf("root %s is missing", vertex.Root)
	}
	total := 0
	var err error
	g.vertices.Each(func(id vertex.ID) bool {
		var last string
		for i, e := range g.edges.Edges(id) {
			if !g.vertices.Has(e.Target) {
				err = fmt.Errorf("edge %s.%s points at missing %s", id, e.Label, e.Target)
				return false
			}
			if i > 0 && e.Label <= last {
				err = fmt.Errorf("vertex %s has duplicate or unordered label %q", id, e.Label)
				return false
			}
			last = e.Label
			total++
		}
		return true
	})
	if err != nil {
		return err
	}
	if total != g.edges.Len() {
		return fmt.Errorf("%d edges start at missing vertices", g.edges.Len()-total)
	}
	return nil
}
