package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/specialistvlad/sodggo/internal/graph"
	"github.com/specialistvlad/sodggo/internal/path"
)

// Model is the whole configuration file.
type Model struct {
	Engine    Engine    `toml:"engine"`
	Collector Collector `toml:"collector"`
	Log       Log       `toml:"log"`
}

// Engine configures every graph the application builds.
type Engine struct {
	ParentLabel   string `toml:"parent_label"`
	MaxParentHops int    `toml:"max_parent_hops"`
}

// Collector configures the garbage collector.
type Collector struct {
	Enabled bool `toml:"enabled"`
}

// Log configures the application logger.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Model {
	return &Model{
		Engine: Engine{
			ParentLabel:   graph.DefaultParentLabel,
			MaxParentHops: graph.DefaultMaxParentHops,
		},
		Collector: Collector{Enabled: true},
		Log:       Log{Level: "info", Format: "text"},
	}
}

// LoadFile reads a TOML file over the defaults and validates the result.
func LoadFile(filename string) (*Model, error) {
	m := Default()
	md, err := toml.DecodeFile(filename, m)
	if err != nil {
		return nil, fmt.Errorf("could not decode config file %s: %w", filename, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config file %s: unknown keys: %s", filename, strings.Join(keys, ", "))
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", filename, err)
	}
	return m, nil
}

// Decode parses TOML text over the defaults and validates the result.
func Decode(data string) (*Model, error) {
	m := Default()
	if _, err := toml.Decode(data, m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks value ranges.
func (m *Model) Validate() error {
	var errs []error
	if err := path.ValidateLabel(m.Engine.ParentLabel); err != nil {
		errs = append(errs, fmt.Errorf("engine.parent_label: %w", err))
	}
	if m.Engine.MaxParentHops <= 0 {
		errs = append(errs, fmt.Errorf("engine.max_parent_hops must be positive, got %d", m.Engine.MaxParentHops))
	}
	switch m.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", m.Log.Level))
	}
	switch m.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of text, json", m.Log.Format))
	}
	return errors.Join(errs...)
}

// GraphOptions returns the graph options the engine section asks for.
func (m *Model) GraphOptions() []graph.Option {
	return []graph.Option{
		graph.WithParentLabel(m.Engine.ParentLabel),
		graph.WithMaxParentHops(m.Engine.MaxParentHops),
	}
}
