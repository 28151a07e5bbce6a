package hclgraph

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/sodggo/internal/edge"
	"github.com/specialistvlad/sodggo/internal/graph"
	"github.com/specialistvlad/sodggo/internal/vertex"
	"github.com/zclconf/go-cty/cty"
)

// VertexName is the block label Format uses for id.
func VertexName(id vertex.ID) string {
	if id == vertex.Root {
		return RootName
	}
	return fmt.Sprintf("v%d", id)
}

// Format renders g as an HCL graph file. Vertices appear in ascending id
// order with their edges sorted by label, so equal graphs format equally.
// Payloads are always written as data.
func Format(g *graph.Graph) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, rec := range g.Records() {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("vertex", []string{VertexName(rec.ID)})
		attrs := block.Body()
		if rec.Full {
			attrs.SetAttributeValue("data", cty.StringVal(FormatData(rec.Data)))
		}
		if len(rec.Edges) > 0 {
			attrs.SetAttributeRaw("edges", edgeTokens(rec.Edges))
		}
	}
	return f.Bytes()
}

// edgeTokens renders edges as an object with quoted keys. Bare keys would be
// read back as keywords or expressions for labels such as "for".
func edgeTokens(edges []edge.Edge) hclwrite.Tokens {
	items := make([]hclwrite.ObjectAttrTokens, len(edges))
	for i, e := range edges {
		items[i] = hclwrite.ObjectAttrTokens{
			Name:  hclwrite.TokensForValue(cty.StringVal(e.Label)),
			Value: hclwrite.TokensForValue(cty.StringVal(VertexName(e.Target))),
		}
	}
	return hclwrite.TokensForObject(items)
}

// Write writes Format(g) to w.
func Write(w io.Writer, g *graph.Graph) error {
	_, err := w.Write(Format(g))
	return err
}
