package hclgraph

import "github.com/hashicorp/hcl/v2"

// fileRoot is decoded from every graph file. Any other top-level block or
// attribute is an error.
type fileRoot struct {
	Vertices []*vertexBlock `hcl:"vertex,block"`
}

// vertexBlock is one `vertex "name" { ... }` block. Attributes are kept as
// expressions so that their source ranges survive into diagnostics.
type vertexBlock struct {
	Name     string         `hcl:"name,label"`
	Data     hcl.Expression `hcl:"data,optional"`
	Value    hcl.Expression `hcl:"value,optional"`
	Edges    hcl.Expression `hcl:"edges,optional"`
	DefRange hcl.Range      `hcl:",def_range"`
}

// RootName is the block label that denotes vertex 0.
const RootName = "root"
