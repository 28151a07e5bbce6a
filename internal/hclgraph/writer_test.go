package hclgraph

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/sodggo/internal/graph"
	"github.com/specialistvlad/sodggo/internal/vertex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	g := graph.New()
	g.Add()
	g.Add()
	require.NoError(t, g.Put(0, "b", 1))
	require.NoError(t, g.Put(1, "parent", 0))
	require.NoError(t, g.SetData(1, []byte{0xca, 0xfe}))

	out := string(Format(g))
	assert.Contains(t, out, `vertex "root" {`)
	assert.Contains(t, out, `vertex "v1" {`)
	assert.Contains(t, out, `"CA-FE"`)
	assert.Contains(t, out, `"b" = "v1"`)
	assert.Contains(t, out, `"parent" = "root"`)
	assert.Less(t, bytes.Index([]byte(out), []byte(`"root"`)), bytes.Index([]byte(out), []byte(`"v1" {`)))
}

func TestFormat_Empty(t *testing.T) {
	assert.Empty(t, Format(graph.New()))
}

func TestWrite_RoundTrip(t *testing.T) {
	g, err := NewLoader().Parse(testContext(), "sample.hcl", []byte(sample))
	require.NoError(t, err)
	require.NoError(t, g.SetData(vertex.Root, []byte{}))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, g))

	back, err := NewLoader().Parse(testContext(), "roundtrip.hcl", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, g.Records(), back.Records())
	assert.Equal(t, buf.String(), string(Format(back)), "formatting is stable")

	for _, raw := range []string{"a", "answer", "a.answer", "answer.self.a"} {
		want, err := g.ResolveString(vertex.Root, raw)
		require.NoError(t, err, raw)
		got, err := back.ResolveString(vertex.Root, raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestWrite_RoundTripKeywordLabels(t *testing.T) {
	labels := []string{"for", "if", "in", "null", "true", "false", "a-b", "1x", "${x}", "%{y}", "φ", "a/b", `a\b`, `q"q`}

	g := graph.New()
	root := g.Add()
	for i, label := range labels {
		id := g.Add()
		require.NoError(t, g.SetData(id, []byte{byte(i)}))
		require.NoError(t, g.Put(root, label, id))
	}
	require.NoError(t, g.Put(1, "for", root))

	back, err := NewLoader().Parse(testContext(), "labels.hcl", Format(g))
	require.NoError(t, err)
	assert.Equal(t, g.Records(), back.Records())

	for i, label := range labels {
		id, ok := back.Get(vertex.Root, label)
		require.True(t, ok, label)
		data, _, err := back.Data(id)
		require.NoError(t, err)
		assert.Equal(t, []byte{byte(i)}, data, label)
	}
}

func TestVertexName(t *testing.T) {
	assert.Equal(t, "root", VertexName(vertex.Root))
	assert.Equal(t, "v12", VertexName(12))
}
