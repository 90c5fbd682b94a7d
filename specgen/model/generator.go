// Package model implements the model-spec generation engine: it converts an
// arbitrary graph of runtime types, including self-referential and mutually
// recursive ones, into schema nodes. Complex types beyond the root of a
// generation call are expressed as reference nodes and expanded lazily
// through a per-call work queue, so expansion terminates on any type graph.
package model

import (
	"reflect"

	"github.com/ozziepeeps/Swashbuckle/specgen/schema"
)

// DocProvider supplies optional property documentation. A missing provider
// or a missing entry leaves descriptions absent; it is never an error.
type DocProvider interface {
	// FieldDoc returns the documentation for a field of the given type,
	// or "" if none is known.
	FieldDoc(owner reflect.Type, field string) string
}

// Config configures a Generator.
type Config struct {
	// Registry receives every complex type discovered across Generate
	// calls. Required.
	Registry *schema.Registry

	// Overrides maps types to hand-authored schema nodes, consulted before
	// any built-in classification rule.
	Overrides map[reflect.Type]*schema.Node

	// Docs supplies property documentation. Optional.
	Docs DocProvider
}

// Generator turns root types into schema trees while accumulating all
// complex types it encounters in its registry. A Generator is a sequential,
// call-and-return computation; the registry it writes to is safe to share.
type Generator struct {
	registry  *schema.Registry
	overrides map[reflect.Type]*schema.Node
	docs      DocProvider
}

// New creates a Generator. A nil Registry is a configuration error.
func New(cfg Config) *Generator {
	if cfg.Registry == nil {
		panic("model: Config.Registry is required")
	}
	return &Generator{
		registry:  cfg.Registry,
		overrides: cfg.Overrides,
		docs:      cfg.Docs,
	}
}

// Registry returns the registry this generator populates.
func (g *Generator) Registry() *schema.Registry {
	return g.registry
}

// Generate expands rootType into a schema node. The root is always fully
// expanded, never returned as a bare reference. Every complex type reached
// from the root, directly or through any chain of properties and collection
// items, is registered in the generator's registry before Generate returns,
// so all reference nodes in the result are resolvable.
func (g *Generator) Generate(rootType reflect.Type) *schema.Node {
	pending := newPendingQueue()

	root := g.classify(rootType, false, pending)
	if root.Kind == schema.KindObject {
		g.registry.Register(root)
	}

	// Drain in discovery order. Expanding one type may enqueue more; a type
	// is enqueued at most once, and a concrete type graph has finitely many
	// distinct complex types, so the loop terminates.
	for {
		next, ok := pending.nextUnresolved()
		if !ok {
			break
		}
		n := g.classify(next, false, pending)
		pending.resolve(next, n)
		if n.Kind == schema.KindObject {
			g.registry.Register(n)
		}
	}

	return root
}

// GenerateValue is a convenience wrapper over Generate for a value's type.
func (g *Generator) GenerateValue(v any) *schema.Node {
	if v == nil {
		return schema.Void()
	}
	return g.Generate(reflect.TypeOf(v))
}

// pendingQueue tracks complex types discovered during one Generate call.
// A nil node marks an entry that still awaits expansion. Membership is
// checked before insertion so no type is ever queued twice.
type pendingQueue struct {
	order []reflect.Type
	nodes map[reflect.Type]*schema.Node
}

func newPendingQueue() *pendingQueue {
	return &pendingQueue{nodes: make(map[reflect.Type]*schema.Node)}
}

func (q *pendingQueue) add(t reflect.Type) {
	if _, ok := q.nodes[t]; ok {
		return
	}
	q.nodes[t] = nil
	q.order = append(q.order, t)
}

func (q *pendingQueue) nextUnresolved() (reflect.Type, bool) {
	for _, t := range q.order {
		if q.nodes[t] == nil {
			return t, true
		}
	}
	return nil, false
}

func (q *pendingQueue) resolve(t reflect.Type, n *schema.Node) {
	q.nodes[t] = n
}
