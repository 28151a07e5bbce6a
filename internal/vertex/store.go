package vertex

import (
	"bytes"
	"fmt"
)

// ID identifies a vertex within a single graph instance.
type ID uint32

// Root is the distinguished vertex every non-empty graph contains.
const Root ID = 0

// String renders the id the way the graph tooling prints vertices, e.g. ν42.
func (id ID) String() string {
	return fmt.Sprintf("ν%d", uint32(id))
}

// slot is one entry of the dense store. A nil data slice with full=false means
// the vertex has not been dataized yet; full=true with an empty slice is a
// legitimate zero-length payload.
type slot struct {
	live bool
	full bool
	data []byte
}

// Store is a dense, id-indexed container of vertices and their payloads.
type Store struct {
	slots []slot
	count int
	next  ID
}

// New creates a new, empty vertex store.
func New() *Store {
	return &Store{}
}

// Add allocates a fresh vertex and returns its id. The first vertex of an
// empty store is always Root.
func (s *Store) Add() ID {
	if s.count == 0 {
		s.slots = s.slots[:0]
		s.next = Root
	}
	id := s.next
	s.next++
	for ID(len(s.slots)) <= id {
		s.slots = append(s.slots, slot{})
	}
	s.slots[id] = slot{live: true}
	s.count++
	return id
}

// Has reports whether the vertex is present.
func (s *Store) Has(id ID) bool {
	return int(id) < len(s.slots) && s.slots[id].live
}

// Remove deletes the vertex and its payload. It returns false if the vertex
// was not present.
func (s *Store) Remove(id ID) bool {
	if !s.Has(id) {
		return false
	}
	s.slots[id] = slot{}
	s.count--
	if s.count == 0 {
		s.slots = s.slots[:0]
		s.next = Root
	}
	return true
}

// SetData replaces the payload of the vertex as a whole. The bytes are copied,
// so the caller may reuse its buffer. It returns false if the vertex is absent.
func (s *Store) SetData(id ID, data []byte) bool {
	if !s.Has(id) {
		return false
	}
	s.slots[id].full = true
	s.slots[id].data = bytes.Clone(data)
	if s.slots[id].data == nil {
		s.slots[id].data = []byte{}
	}
	return true
}

// Data returns a copy of the payload. The second result is false when the
// vertex is absent or has no payload yet; use Has to tell the two apart.
func (s *Store) Data(id ID) ([]byte, bool) {
	if !s.Has(id) || !s.slots[id].full {
		return nil, false
	}
	return bytes.Clone(s.slots[id].data), true
}

// Len returns the number of live vertices.
func (s *Store) Len() int {
	return s.count
}

// Each calls fn for every live vertex in ascending id order, stopping early
// if fn returns false.
func (s *Store) Each(fn func(id ID) bool) {
	for i := range s.slots {
		if !s.slots[i].live {
			continue
		}
		if !fn(ID(i)) {
			return
		}
	}
}

// IDs returns the ids of all live vertices in ascending order.
func (s *Store) IDs() []ID {
	ids := make([]ID, 0, s.count)
	s.Each(func(id ID) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// Clone returns a deep copy of the store, payloads included.
func (s *Store) Clone() *Store {
	c := &Store{
		slots: make([]slot, len(s.slots)),
		count: s.count,
		next:  s.next,
	}
	for i, sl := range s.slots {
		c.slots[i] = slot{live: sl.live, full: sl.full, data: bytes.Clone(sl.data)}
	}
	return c
}
