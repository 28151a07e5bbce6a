package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/sodggo/internal/config"
	"github.com/specialistvlad/sodggo/internal/ctxlog"
	"github.com/specialistvlad/sodggo/internal/graph"
	"github.com/specialistvlad/sodggo/internal/hclgraph"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	settings *config.Model
	loader   config.Loader
	program  *graph.Shared
}

// Option customizes an App.
type Option func(*App)

// WithLoader replaces the HCL loader.
func WithLoader(loader config.Loader) Option {
	return func(a *App) {
		a.loader = loader
	}
}

// NewApp is the constructor for the main application. Results go to outW and
// logs to logW; each App has its own logger.
func NewApp(outW, logW io.Writer, appConfig *Config, opts ...Option) (*App, error) {
	settings, err := appConfig.settings()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger := newLogger(settings.Log.Level, settings.Log.Format, logW)
	logger.Debug("Logger configured successfully.", "collector_built", collectorBuilt)

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		settings: settings,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.loader == nil {
		a.loader = hclgraph.NewLoader(a.graphOptions()...)
	}
	return a, nil
}

func (a *App) graphOptions() []graph.Option {
	return append(a.settings.GraphOptions(), graph.WithLogger(a.logger))
}

// Program returns the linked program graph once Run has loaded it.
func (a *App) Program() *graph.Shared {
	return a.program
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
