//go:build nogc

package app

// collectorBuilt reports whether this binary links the garbage collector.
const collectorBuilt = false

// collect is a no-op in builds tagged nogc, which leave the collector out.
func (a *App) collect() error {
	a.logger.Warn("Garbage collection requested but not built into this binary (nogc).")
	return nil
}
