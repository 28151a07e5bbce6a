// Package vertex provides the vertex store of the object graph: it allocates
// vertex identifiers and owns the opaque payload attached to each vertex.
//
// # Why Vertex Store Exists
//
// The vertex store isolates **identity and payload** (which vertices exist and
// what bytes they carry) from the **attribute structure** (labeled edges)
// managed by package edge. The graph facade composes both and is the only
// place where cross-store invariants (no dangling edges, root presence) are
// enforced; this package knows nothing about edges.
//
// # Storage
//
// Identifiers are handed out monotonically starting from the root (0), so the
// live id range is almost always dense. Vertices are therefore kept in a slice
// indexed by id, with a liveness flag per slot, instead of a hash map. Removed
// slots stay empty; an id is never handed out twice while the store holds any
// vertex. Once the store becomes empty the counter restarts at the root, since
// no reference to an old id can survive an empty graph.
//
// # Thread-Safety
//
// Store is not safe for concurrent use. Callers serialize access, typically
// through graph.Shared.
package vertex
