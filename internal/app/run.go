package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/specialistvlad/sodggo/internal/graph"
	"github.com/specialistvlad/sodggo/internal/hclgraph"
	"github.com/specialistvlad/sodggo/internal/snapshot"
	"github.com/specialistvlad/sodggo/internal/vertex"
)

// Run executes the main application logic.
func (a *App) Run(ctx context.Context) error {
	ctx = a.context(ctx)
	a.logger.Debug("App.Run method started.")

	units, err := a.loader.Load(ctx, a.config.Paths...)
	if err != nil {
		return fmt.Errorf("failed to load graphs: %w", err)
	}
	if len(units) == 0 {
		return fmt.Errorf("no .hcl files found in %v", a.config.Paths)
	}

	program, err := a.link(ctx, units)
	if err != nil {
		return err
	}
	a.program = graph.NewShared(program)

	if a.config.Collect {
		if err := a.collect(); err != nil {
			return err
		}
	}

	queryErr := a.resolve()

	if a.config.SnapshotOut != "" {
		if err := a.writeSnapshot(a.config.SnapshotOut); err != nil {
			return err
		}
	}
	if a.config.HCLOut != "" {
		if err := a.writeHCL(a.config.HCLOut); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return queryErr
}

// resolve prints one line per query. Failed queries are reported and the
// rest still run.
func (a *App) resolve() error {
	var errs []error
	for _, q := range a.config.Resolve {
		err := a.program.View(func(g *graph.Graph) error {
			id, err := g.ResolveString(vertex.Root, q)
			if err != nil {
				return err
			}
			data, full, err := g.Data(id)
			if err != nil {
				return err
			}
			payload := "-"
			if full {
				payload = hclgraph.FormatData(data)
			}
			fmt.Fprintf(a.outW, "%s\t%s\t%s\n", q, id, payload)
			return nil
		})
		if err != nil {
			fmt.Fprintf(a.outW, "%s\terror: %v\n", q, err)
			errs = append(errs, fmt.Errorf("resolve %q: %w", q, err))
		}
	}
	return errors.Join(errs...)
}

func (a *App) writeSnapshot(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	err = a.program.View(func(g *graph.Graph) error {
		return snapshot.Encode(f, g)
	})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", filename, err)
	}
	a.logger.Info("Snapshot written.", "path", filename)
	return nil
}

func (a *App) writeHCL(filename string) error {
	var out []byte
	_ = a.program.View(func(g *graph.Graph) error {
		out = hclgraph.Format(g)
		return nil
	})
	if err := os.WriteFile(filename, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	a.logger.Info("HCL graph written.", "path", filename)
	return nil
}
