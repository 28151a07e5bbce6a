// Package graph provides the object graph: a directed, labeled graph of
// vertices with opaque payloads, combining the vertex store and the edge
// index behind one API that keeps their shared invariants.
//
// # Why Graph Package Exists
//
// The graph package is a facade over two specialized stores:
//
//	┌─────────────────────────────────────┐
//	│               Graph                 │
//	│  (invariants, resolution, export)   │
//	└──────────┬────────────┬─────────────┘
//	           │            │
//	           ▼            ▼
//	  ┌────────────┐  ┌────────────┐
//	  │   Vertex   │  │    Edge    │
//	  │   Store    │  │   Index    │
//	  │ (ids, data)│  │  (labels)  │
//	  └────────────┘  └────────────┘
//
// **Vertex Store** (vertex.Store) allocates ids and holds payloads.
// **Edge Index** (edge.Index) holds, per vertex, label -> target.
//
// Neither store can see the other, so every rule that spans them lives here:
//
//   - every edge target is a live vertex (no dangling edges);
//   - the root (vertex 0) exists whenever the graph is non-empty;
//   - at most one edge per (source, label), later writes replace earlier ones;
//   - a failed call leaves the graph exactly as it was.
//
// # Resolution
//
// Resolve walks a label path from a start vertex. A label missing on the
// current vertex is retried on the vertex behind its parent edge, without
// consuming the label, which is how an object inherits the attributes of
// its decoratee. The climb is bounded and loop-checked, see Resolve.
//
// # Thread-Safety
//
// Graph has no internal locking. At most one goroutine may mutate a graph at
// a time, and reads must not overlap with a mutation. Shared wraps a graph
// with a sync.RWMutex for callers that need that exclusion.
package graph
