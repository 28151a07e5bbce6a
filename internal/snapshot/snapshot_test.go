package snapshot

import (
	"bytes"
	"testing"

	"github.com/golang/snappy"
	"github.com/specialistvlad/sodggo/internal/edge"
	"github.com/specialistvlad/sodggo/internal/graph"
	"github.com/specialistvlad/sodggo/internal/vertex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinylib/msgp/msgp"
)

// sampleGraph is a helper that builds a small graph with a parent chain,
// a self loop, an empty payload and a removed vertex.
func sampleGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	for range 5 {
		g.Add()
	}
	require.NoError(t, g.Put(0, "a", 1))
	require.NoError(t, g.Put(1, "parent", 0))
	require.NoError(t, g.Put(0, "b", 4))
	require.NoError(t, g.Put(4, "self", 4))
	require.NoError(t, g.Put(4, "ν", 1))
	require.NoError(t, g.SetData(1, []byte("payload")))
	require.NoError(t, g.SetData(4, []byte{}))
	require.NoError(t, g.Remove(3))
	return g
}

func TestRoundTrip(t *testing.T) {
	g := sampleGraph(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, g))

	back, err := Decode(&buf)
	require.NoError(t, err)
	require.NoError(t, back.Validate())
	assert.Equal(t, g.Len(), back.Len())
	assert.Equal(t, g.EdgeCount(), back.EdgeCount())

	for _, raw := range []string{"a", "b", "b.self", "b.ν", "a.b", "a.b.self"} {
		want, err := g.ResolveString(vertex.Root, raw)
		require.NoError(t, err, raw)
		got, err := back.ResolveString(vertex.Root, raw)
		require.NoError(t, err, raw)

		wantData, wantFull, _ := g.Data(want)
		gotData, gotFull, _ := back.Data(got)
		assert.Equal(t, wantFull, gotFull, raw)
		assert.Equal(t, wantData, gotData, raw)
	}
}

func TestRoundTrip_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, graph.New()))
	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, back.Len())
}

func TestEncode_Deterministic(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, Encode(&first, sampleGraph(t)))
	require.NoError(t, Encode(&second, sampleGraph(t)))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestDecode_AppliesOptions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleGraph(t)))
	back, err := Decode(&buf, graph.WithParentLabel("up"))
	require.NoError(t, err)
	assert.Equal(t, "up", back.ParentLabel())
}

func TestDecode_Rejects(t *testing.T) {
	frame := func(write func(w *msgp.Writer)) *bytes.Buffer {
		var buf bytes.Buffer
		sw := snappy.NewBufferedWriter(&buf)
		mw := msgp.NewWriter(sw)
		write(mw)
		require.NoError(t, mw.Flush())
		require.NoError(t, sw.Close())
		return &buf
	}

	testCases := []struct {
		name  string
		input *bytes.Buffer
	}{
		{name: "not snappy", input: bytes.NewBufferString("plain text")},
		{name: "wrong magic", input: frame(func(w *msgp.Writer) {
			_ = w.WriteString("nope")
		})},
		{name: "future version", input: frame(func(w *msgp.Writer) {
			_ = w.WriteString(magic)
			_ = w.WriteUint(99)
			_ = w.WriteInt(0)
		})},
		{name: "truncated records", input: frame(func(w *msgp.Writer) {
			_ = w.WriteString(magic)
			_ = w.WriteUint(version)
			_ = w.WriteInt(2)
		})},
		{name: "oversized record count", input: frame(func(w *msgp.Writer) {
			_ = w.WriteString(magic)
			_ = w.WriteUint(version)
			_ = w.WriteInt64(1 << 62)
		})},
		{name: "record count larger than the stream", input: frame(func(w *msgp.Writer) {
			_ = w.WriteString(magic)
			_ = w.WriteUint(version)
			_ = w.WriteInt64(maxRecords)
		})},
		{name: "oversized edge count", input: frame(func(w *msgp.Writer) {
			_ = w.WriteString(magic)
			_ = w.WriteUint(version)
			_ = w.WriteInt(1)
			_ = w.WriteArrayHeader(4)
			_ = w.WriteUint32(0)
			_ = w.WriteBool(false)
			_ = w.WriteBytes(nil)
			_ = w.WriteArrayHeader(1<<32 - 1)
		})},
		{name: "dangling edge", input: frame(func(w *msgp.Writer) {
			_ = w.WriteString(magic)
			_ = w.WriteUint(version)
			_ = w.WriteInt(1)
			_ = writeRecord(w, graph.Record{ID: 0, Edges: []edge.Edge{{Label: "a", Target: 5}}})
		})},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { _, err = Decode(tc.input) })
			assert.Error(t, err)
		})
	}
}

func TestDecode_MissingRoot(t *testing.T) {
	var buf bytes.Buffer
	sw := snappy.NewBufferedWriter(&buf)
	mw := msgp.NewWriter(sw)
	require.NoError(t, writeHeader(mw, 1))
	require.NoError(t, writeRecord(mw, graph.Record{ID: 7}))
	require.NoError(t, mw.Flush())
	require.NoError(t, sw.Close())

	_, err := Decode(&buf)
	assert.ErrorIs(t, err, graph.ErrNotFound)
}
