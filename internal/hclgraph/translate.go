package hclgraph

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/sodggo/internal/ctxlog"
	"github.com/specialistvlad/sodggo/internal/graph"
	"github.com/specialistvlad/sodggo/internal/vertex"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// isExprDefined reports whether an optional attribute was written in the
// source. Omitted attributes decode to zero-width placeholder expressions.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}

func errorDiag(subject hcl.Range, summary, detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  subject.Ptr(),
	}
}

// translate allocates the declared vertices and then fills in payloads and
// edges. All problems in a file are collected before returning.
func (l *Loader) translate(ctx context.Context, blocks []*vertexBlock) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	g := graph.New(append([]graph.Option{graph.WithLogger(logger)}, l.opts...)...)
	if len(blocks) == 0 {
		return g, nil
	}

	var diags hcl.Diagnostics
	names := make(map[string]vertex.ID, len(blocks))
	var rootBlock *vertexBlock
	for _, b := range blocks {
		if b.Name == RootName {
			rootBlock = b
			break
		}
	}
	if rootBlock == nil {
		return nil, hcl.Diagnostics{errorDiag(blocks[0].DefRange,
			"Missing root vertex",
			fmt.Sprintf("A graph file must declare a vertex named %q.", RootName))}
	}
	names[RootName] = g.Add()

	for _, b := range blocks {
		if b == rootBlock {
			continue
		}
		if _, dup := names[b.Name]; dup {
			diags = append(diags, errorDiag(b.DefRange,
				"Duplicate vertex",
				fmt.Sprintf("A vertex named %q was already declared.", b.Name)))
			continue
		}
		names[b.Name] = g.Add()
	}
	if diags.HasErrors() {
		return nil, diags
	}

	for _, b := range blocks {
		id := names[b.Name]
		diags = append(diags, l.translatePayload(g, id, b)...)
		diags = append(diags, l.translateEdges(g, id, b, names)...)
	}
	if diags.HasErrors() {
		return nil, diags
	}

	logger.Debug("Translated HCL vertices.", "vertices", g.Len(), "edges", g.EdgeCount())
	return g, nil
}

func (l *Loader) translatePayload(g *graph.Graph, id vertex.ID, b *vertexBlock) hcl.Diagnostics {
	hasData, hasValue := isExprDefined(b.Data), isExprDefined(b.Value)
	switch {
	case hasData && hasValue:
		return hcl.Diagnostics{errorDiag(b.Value.Range(),
			"Conflicting payload",
			fmt.Sprintf("Vertex %q sets both data and value; use one.", b.Name))}
	case hasData:
		raw, diags := b.Data.Value(nil)
		if diags.HasErrors() {
			return diags
		}
		var s string
		if err := gocty.FromCtyValue(raw, &s); err != nil {
			return hcl.Diagnostics{errorDiag(b.Data.Range(), "Invalid data", err.Error())}
		}
		data, err := ParseData(s)
		if err != nil {
			return hcl.Diagnostics{errorDiag(b.Data.Range(), "Invalid data", err.Error())}
		}
		return setData(g, id, data, b.Data.Range())
	case hasValue:
		v, diags := b.Value.Value(nil)
		if diags.HasErrors() {
			return diags
		}
		data, err := valueBytes(v)
		if err != nil {
			return hcl.Diagnostics{errorDiag(b.Value.Range(), "Invalid value", err.Error())}
		}
		return setData(g, id, data, b.Value.Range())
	}
	return nil
}

func setData(g *graph.Graph, id vertex.ID, data []byte, rng hcl.Range) hcl.Diagnostics {
	if err := g.SetData(id, data); err != nil {
		return hcl.Diagnostics{errorDiag(rng, "Cannot set payload", err.Error())}
	}
	return nil
}

func (l *Loader) translateEdges(g *graph.Graph, src vertex.ID, b *vertexBlock, names map[string]vertex.ID) hcl.Diagnostics {
	if !isExprDefined(b.Edges) {
		return nil
	}
	pairs, diags := hcl.ExprMap(b.Edges)
	if diags.HasErrors() {
		return diags
	}

	for _, pair := range pairs {
		label, keyDiags := stringOrKeyword(pair.Key)
		target, valDiags := stringOrKeyword(pair.Value)
		if keyDiags.HasErrors() || valDiags.HasErrors() {
			diags = append(diags, keyDiags...)
			diags = append(diags, valDiags...)
			continue
		}

		dst, ok := names[target]
		if !ok {
			diags = append(diags, errorDiag(pair.Value.Range(),
				"Unknown vertex",
				fmt.Sprintf("Edge %q of vertex %q points to %q, which is not declared in this file.", label, b.Name, target)))
			continue
		}
		if err := g.Put(src, label, dst); err != nil {
			summary := "Cannot add edge"
			if errors.Is(err, graph.ErrInvalidLabel) {
				summary = "Invalid edge label"
			}
			diags = append(diags, errorDiag(pair.Key.Range(), summary, err.Error()))
		}
	}
	return diags
}

// stringOrKeyword accepts either a quoted string or a bare name.
func stringOrKeyword(expr hcl.Expression) (string, hcl.Diagnostics) {
	if kw := hcl.ExprAsKeyword(expr); kw != "" {
		return kw, nil
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	if v.IsNull() || !v.IsKnown() || v.Type() != cty.String {
		return "", hcl.Diagnostics{errorDiag(expr.Range(), "Expected a name", "A vertex name or edge label must be a string.")}
	}
	return v.AsString(), nil
}
