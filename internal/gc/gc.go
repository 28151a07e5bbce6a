// Package gc implements a mark-and-sweep collector for object graphs.
//
// The collector is a separate package so that programs which never delete
// vertices do not need to link it. A pass marks every vertex reachable from
// the root by following all outgoing edges, parent edges included, and then
// removes every vertex that was not marked together with the edges touching
// it. Passes are only run on request.
//
// The collector does no locking. Callers sharing a graph between goroutines
// run Collect inside graph.Shared.Update.
package gc

import (
	"fmt"
	"log/slog"

	"github.com/specialistvlad/sodggo/internal/graph"
	"github.com/specialistvlad/sodggo/internal/vertex"
)

// State is the phase a Collector is in.
type State int

const (
	Idle State = iota
	Marking
	Sweeping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Marking:
		return "marking"
	case Sweeping:
		return "sweeping"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stats summarizes one collection pass.
type Stats struct {
	Reachable int
	Removed   int
}

// Collector collects unreachable vertices of a single graph.
type Collector struct {
	g      *graph.Graph
	state  State
	logger *slog.Logger
	passes int
}

// New creates a collector for g. It logs through the graph's logger.
func New(g *graph.Graph) *Collector {
	return &Collector{g: g, logger: g.Logger()}
}

// State reports the current phase. Outside of Collect it is always Idle.
func (c *Collector) State() State {
	return c.state
}

// Passes reports how many passes completed.
func (c *Collector) Passes() int {
	return c.passes
}

// Collect runs one full pass: Idle -> Marking -> Sweeping -> Idle.
func (c *Collector) Collect() (Stats, error) {
	if c.state != Idle {
		return Stats{}, fmt.Errorf("gc: collect called while %s", c.state)
	}
	defer func() { c.state = Idle }()

	if c.g.Len() == 0 {
		c.passes++
		return Stats{}, nil
	}

	c.state = Marking
	marked, err := Mark(c.g)
	if err != nil {
		return Stats{}, fmt.Errorf("gc: mark: %w", err)
	}

	c.state = Sweeping
	removed, err := c.sweep(marked)
	if err != nil {
		return Stats{Reachable: len(marked), Removed: removed}, fmt.Errorf("gc: sweep: %w", err)
	}

	c.passes++
	c.logger.Debug("Collected garbage.",
		"pass", c.passes,
		"reachable", len(marked),
		"removed", removed,
		"remaining_edges", c.g.EdgeCount(),
	)
	return Stats{Reachable: len(marked), Removed: removed}, nil
}

// sweep removes every vertex missing from marked, in ascending id order.
func (c *Collector) sweep(marked map[vertex.ID]struct{}) (int, error) {
	removed := 0
	for _, id := range c.g.IDs() {
		if _, ok := marked[id]; ok {
			continue
		}
		if err := c.g.Remove(id); err != nil {
			return removed, fmt.Errorf("vertex %s: %w", id, err)
		}
		removed++
	}
	return removed, nil
}

// Mark returns the set of vertices reachable from the root of g. An empty
// graph has an empty reachable set.
func Mark(g *graph.Graph) (map[vertex.ID]struct{}, error) {
	marked := make(map[vertex.ID]struct{})
	if !g.Has(vertex.Root) {
		return marked, nil
	}
	marked[vertex.Root] = struct{}{}
	queue := []vertex.ID{vertex.Root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		edges, err := g.Edges(cur)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			if _, seen := marked[e.Target]; seen {
				continue
			}
			marked[e.Target] = struct{}{}
			queue = append(queue, e.Target)
		}
	}
	return marked, nil
}

// Collect runs a single pass over g with a throwaway collector.
func Collect(g *graph.Graph) (Stats, error) {
	return New(g).Collect()
}
