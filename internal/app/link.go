package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/sodggo/internal/ctxlog"
	"github.com/specialistvlad/sodggo/internal/graph"
	"github.com/specialistvlad/sodggo/internal/hclgraph"
	"github.com/specialistvlad/sodggo/internal/merge"
)

// link merges every unit, in order, into a new empty program graph. Each
// unit's root maps to the program root.
func (a *App) link(ctx context.Context, units []hclgraph.Unit) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	program := graph.New(a.graphOptions()...)

	for _, u := range units {
		report, err := merge.Merge(program, u.Graph)
		if err != nil {
			return nil, fmt.Errorf("failed to link %s: %w", u.Path, err)
		}
		logger.Debug("Linked unit.",
			"path", u.Path,
			"visited", report.Visited,
			"added_vertices", report.AddedVertices,
			"added_edges", report.AddedEdges,
			"set_payloads", report.SetPayloads,
		)
	}

	logger.Info("Program linked.", "units", len(units), "vertices", program.Len(), "edges", program.EdgeCount())
	return program, nil
}
