package app

import (
	"errors"

	"github.com/specialistvlad/sodggo/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths      []string // hcl files or directories
	ConfigFile string   // optional TOML file

	Resolve     []string // paths to resolve from the root
	SnapshotOut string
	HCLOut      string
	Collect     bool

	// Empty values leave the config file (or default) setting alone.
	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("at least one graph path is required")
	}
	return &cfg, nil
}

// settings merges the config file, or the defaults, with the flag overrides.
func (c *Config) settings() (*config.Model, error) {
	m := config.Default()
	if c.ConfigFile != "" {
		loaded, err := config.LoadFile(c.ConfigFile)
		if err != nil {
			return nil, err
		}
		m = loaded
	}
	if c.LogLevel != "" {
		m.Log.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		m.Log.Format = c.LogFormat
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
