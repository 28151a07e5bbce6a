// Package snapshot stores object graphs in a compact binary form.
//
// A snapshot is a snappy framed stream holding MessagePack values:
//
//	"sodg" version count record...
//
// where each record is the array [id, full, data, edges] and edges is an
// array of [label, target] pairs. Records follow the graph's deterministic
// enumeration, so equal graphs produce equal snapshots.
package snapshot

import (
	"errors"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/specialistvlad/sodggo/internal/edge"
	"github.com/specialistvlad/sodggo/internal/graph"
	"github.com/specialistvlad/sodggo/internal/vertex"
	"github.com/tinylib/msgp/msgp"
)

const (
	magic   = "sodg"
	version = 1

	// maxRecords is the number of distinct vertex ids.
	maxRecords = 1 << 32
	// allocHint caps preallocation driven by counts read from the stream.
	allocHint = 1024
)

// ErrFormat is returned when a stream is not a snapshot this package can read.
var ErrFormat = errors.New("snapshot: bad format")

// Encode writes g to w.
func Encode(w io.Writer, g *graph.Graph) error {
	sw := snappy.NewBufferedWriter(w)
	mw := msgp.NewWriter(sw)

	records := g.Records()
	if err := writeHeader(mw, len(records)); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writeRecord(mw, rec); err != nil {
			return fmt.Errorf("snapshot: vertex %s: %w", rec.ID, err)
		}
	}
	if err := mw.Flush(); err != nil {
		return err
	}
	return sw.Close()
}

func writeHeader(mw *msgp.Writer, count int) error {
	if err := mw.WriteString(magic); err != nil {
		return err
	}
	if err := mw.WriteUint(version); err != nil {
		return err
	}
	return mw.WriteInt(count)
}

func writeRecord(mw *msgp.Writer, rec graph.Record) error {
	if err := mw.WriteArrayHeader(4); err != nil {
		return err
	}
	if err := mw.WriteUint32(uint32(rec.ID)); err != nil {
		return err
	}
	if err := mw.WriteBool(rec.Full); err != nil {
		return err
	}
	if err := mw.WriteBytes(rec.Data); err != nil {
		return err
	}
	if err := mw.WriteArrayHeader(uint32(len(rec.Edges))); err != nil {
		return err
	}
	for _, e := range rec.Edges {
		if err := mw.WriteArrayHeader(2); err != nil {
			return err
		}
		if err := mw.WriteString(e.Label); err != nil {
			return err
		}
		if err := mw.WriteUint32(uint32(e.Target)); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads a snapshot from r and rebuilds the graph with opts.
func Decode(r io.Reader, opts ...graph.Option) (*graph.Graph, error) {
	mr := msgp.NewReader(snappy.NewReader(r))

	count, err := readHeader(mr)
	if err != nil {
		return nil, err
	}
	records := make([]graph.Record, 0, min(count, allocHint))
	for i := 0; i < count; i++ {
		rec, err := readRecord(mr)
		if err != nil {
			return nil, fmt.Errorf("snapshot: record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	g, err := graph.Restore(records, opts...)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return g, nil
}

func readHeader(mr *msgp.Reader) (int, error) {
	m, err := mr.ReadString()
	if err != nil || m != magic {
		return 0, fmt.Errorf("%w: missing magic", ErrFormat)
	}
	v, err := mr.ReadUint()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if v != version {
		return 0, fmt.Errorf("%w: unsupported version %d", ErrFormat, v)
	}
	count, err := mr.ReadInt()
	if err != nil || count < 0 || int64(count) > maxRecords {
		return 0, fmt.Errorf("%w: bad record count", ErrFormat)
	}
	return count, nil
}

func readRecord(mr *msgp.Reader) (graph.Record, error) {
	var rec graph.Record
	n, err := mr.ReadArrayHeader()
	if err != nil {
		return rec, err
	}
	if n != 4 {
		return rec, fmt.Errorf("%w: record has %d fields", ErrFormat, n)
	}
	id, err := mr.ReadUint32()
	if err != nil {
		return rec, err
	}
	rec.ID = vertex.ID(id)
	if rec.Full, err = mr.ReadBool(); err != nil {
		return rec, err
	}
	if rec.Data, err = mr.ReadBytes(nil); err != nil {
		return rec, err
	}
	edges, err := mr.ReadArrayHeader()
	if err != nil {
		return rec, err
	}
	if edges > 0 {
		rec.Edges = make([]edge.Edge, 0, min(int(edges), allocHint))
	}
	for range edges {
		pair, err := mr.ReadArrayHeader()
		if err != nil {
			return rec, err
		}
		if pair != 2 {
			return rec, fmt.Errorf("%w: edge has %d fields", ErrFormat, pair)
		}
		label, err := mr.ReadString()
		if err != nil {
			return rec, err
		}
		target, err := mr.ReadUint32()
		if err != nil {
			return rec, err
		}
		rec.Edges = append(rec.Edges, edge.Edge{Label: label, Target: vertex.ID(target)})
	}
	return rec, nil
}
