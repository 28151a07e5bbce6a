package graph

import "sync"

// Shared guards a Graph with a sync.RWMutex. Any number of View calls may run
// together; an Update call runs alone. Everything done inside one callback
// appears atomic to other users of the same Shared.
type Shared struct {
	mu sync.RWMutex
	g  *Graph
}

// NewShared wraps g. The caller must stop using g directly afterwards.
func NewShared(g *Graph) *Shared {
	return &Shared{g: g}
}

// View runs fn under the read lock. fn must not mutate the graph.
func (s *Shared) View(fn func(g *Graph) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.g)
}

// Update runs fn under the write lock.
func (s *Shared) Update(fn func(g *Graph) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.g)
}
