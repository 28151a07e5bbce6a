//go:build !nogc

package app

import (
	"github.com/specialistvlad/sodggo/internal/gc"
	"github.com/specialistvlad/sodggo/internal/graph"
)

// collectorBuilt reports whether this binary links the garbage collector.
const collectorBuilt = true

func (a *App) collect() error {
	if !a.settings.Collector.Enabled {
		a.logger.Warn("Garbage collection requested but disabled by configuration.")
		return nil
	}
	return a.program.Update(func(g *graph.Graph) error {
		stats, err := gc.Collect(g)
		if err != nil {
			return err
		}
		a.logger.Info("Garbage collected.", "reachable", stats.Reachable, "removed", stats.Removed)
		return nil
	})
}
