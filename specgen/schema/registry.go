package schema

import "sync"

// Registry accumulates every object node discovered across one or more
// generation calls describing a single API surface. Entries are added at
// most once per id: a later registration under an existing id is a no-op,
// so reference nodes handed out before the first registration always
// resolve to the same structure.
//
// Registration and lookup are mutex-guarded so hosts may share one Registry
// across operations; generation itself is still a sequential computation.
type Registry struct {
	mu    sync.Mutex
	nodes map[string]*Node
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]*Node)}
}

// Register stores an object node under its id. Registering an id that is
// already present is a no-op. The node must be object-kind; anything else
// is a programmer error.
func (r *Registry) Register(n *Node) {
	if n == nil || n.Kind != KindObject {
		panic("schema: only object nodes can be registered")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.nodes[n.ID]; ok {
		return
	}
	r.nodes[n.ID] = n
	r.order = append(r.order, n.ID)
}

// Get returns the node registered under id, if any.
func (r *Registry) Get(id string) (*Node, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.nodes[id]
	return n, ok
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.nodes)
}

// Definitions returns the registered nodes in registration order.
func (r *Registry) Definitions() []*Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	defs := make([]*Node, len(r.order))
	for i, id := range r.order {
		defs[i] = r.nodes[id]
	}
	return defs
}
