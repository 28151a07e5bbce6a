package hclgraph

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/sodggo/internal/ctxlog"
	"github.com/specialistvlad/sodggo/internal/graph"
	"github.com/specialistvlad/sodggo/internal/vertex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// writeFile is a helper that writes content under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

const sample = `
vertex "foo" {
  data = "d0-bf-d1-80"
  edges = { parent = root }
}

vertex "root" {
  edges = {
    a        = "foo"
    "answer" = "bar"
  }
}

vertex "bar" {
  value = 42
  edges = { parent = "root", self = "bar" }
}
`

func TestParse(t *testing.T) {
	g, err := NewLoader().Parse(testContext(), "sample.hcl", []byte(sample))
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	assert.Equal(t, 3, g.Len())
	foo, ok := g.Get(vertex.Root, "a")
	require.True(t, ok)
	assert.Equal(t, vertex.ID(1), foo, "non-root vertices are allocated in declaration order")

	data, full, err := g.Data(foo)
	require.NoError(t, err)
	assert.True(t, full)
	assert.Equal(t, []byte{0xd0, 0xbf, 0xd1, 0x80}, data)

	bar, err := g.ResolveString(vertex.Root, "a.answer")
	require.NoError(t, err, "answer is inherited through the parent edge of foo")
	data, _, err = g.Data(bar)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 42}, data)

	self, ok := g.Get(bar, "self")
	require.True(t, ok)
	assert.Equal(t, bar, self)
}

func TestParse_Empty(t *testing.T) {
	g, err := NewLoader().Parse(testContext(), "empty.hcl", []byte("# nothing here\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, g.Len())
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		src         string
		wantSummary string
	}{
		{
			name:        "syntax",
			src:         `vertex "root" {`,
			wantSummary: "",
		},
		{
			name:        "missing root",
			src:         `vertex "a" {}`,
			wantSummary: "Missing root vertex",
		},
		{
			name:        "duplicate",
			src:         "vertex \"root\" {}\nvertex \"a\" {}\nvertex \"a\" {}",
			wantSummary: "Duplicate vertex",
		},
		{
			name:        "unknown target",
			src:         `vertex "root" { edges = { a = "ghost" } }`,
			wantSummary: "Unknown vertex",
		},
		{
			name:        "bad label",
			src:         `vertex "root" { edges = { "a.b" = "root" } }`,
			wantSummary: "Invalid edge label",
		},
		{
			name:        "bad hex",
			src:         `vertex "root" { data = "xyz" }`,
			wantSummary: "Invalid data",
		},
		{
			name:        "data and value",
			src:         "vertex \"root\" {\n  data = \"01\"\n  value = 1\n}",
			wantSummary: "Conflicting payload",
		},
		{
			name:        "unsupported value",
			src:         `vertex "root" { value = [1, 2] }`,
			wantSummary: "Invalid value",
		},
		{
			name:        "misspelled block",
			src:         "vertex \"root\" {}\nvertx \"a\" {}",
			wantSummary: "Unsupported block type",
		},
		{
			name:        "top-level attribute",
			src:         "vertex \"root\" {}\nname = \"x\"",
			wantSummary: "Unsupported argument",
		},
		{
			name:        "unknown attribute",
			src:         `vertex "root" { color = "red" }`,
			wantSummary: "Unsupported argument",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().Parse(testContext(), "bad.hcl", []byte(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "bad.hcl")
			if tc.wantSummary == "" {
				return
			}
			var diags hcl.Diagnostics
			require.ErrorAs(t, err, &diags)
			summaries := make([]string, 0, len(diags))
			for _, d := range diags {
				summaries = append(summaries, d.Summary)
			}
			assert.Contains(t, summaries, tc.wantSummary)
		})
	}
}

func TestParse_AppliesGraphOptions(t *testing.T) {
	src := `
vertex "root" { edges = { up = "base" } }
vertex "base" { edges = { k = "leaf" } }
vertex "leaf" { value = "x" }
`
	g, err := NewLoader(graph.WithParentLabel("up")).Parse(testContext(), "opts.hcl", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, "up", g.ParentLabel())

	leaf, err := g.ResolveString(vertex.Root, "k")
	require.NoError(t, err)
	assert.Equal(t, vertex.ID(2), leaf)
}

func TestLoad_DiscoversFilesInLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.hcl", `vertex "root" { value = "b" }`)
	writeFile(t, dir, "nested/a.hcl", `vertex "root" { value = "nested" }`)
	writeFile(t, dir, "a.hcl", `vertex "root" { value = "a" }`)
	writeFile(t, dir, "notes.txt", "ignored")

	units, err := NewLoader().Load(testContext(), dir, filepath.Join(dir, "missing"), filepath.Join(dir, "a.hcl"))
	require.NoError(t, err)

	var got []string
	for _, u := range units {
		data, _, err := u.Graph.Data(vertex.Root)
		require.NoError(t, err)
		got = append(got, string(data))
	}
	assert.Equal(t, []string{"a", "b", "nested"}, got)
}

func TestLoad_ReportsFile(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "broken.hcl", `vertex "root" { edges = { a = "nope" } }`)

	_, err := NewLoader().Load(testContext(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}
