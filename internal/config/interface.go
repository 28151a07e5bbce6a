package config

import (
	"context"

	"github.com/specialistvlad/sodggo/internal/hclgraph"
)

// Loader is the interface for a format-specific graph source. Each unit is
// one independently built graph, returned in the order it must be linked.
type Loader interface {
	Load(ctx context.Context, paths ...string) ([]hclgraph.Unit, error)
}
