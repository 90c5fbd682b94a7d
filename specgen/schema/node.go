// Package schema defines the schema node model produced by spec generation.
// A Node is a tagged variant: exactly one of the Kind* shapes, with the
// fields relevant to that shape populated. Nodes are treated as immutable
// once constructed; the generator hands out fresh copies where a caller
// could otherwise mutate shared state.
package schema

// Kind discriminates the shape of a Node.
type Kind int

const (
	// KindPrimitive is a scalar (integer, number, string, boolean).
	KindPrimitive Kind = iota

	// KindEnumeration is a string scalar restricted to a fixed set of literals.
	KindEnumeration

	// KindArray is an ordered collection with a single item schema.
	KindArray

	// KindObject is a named property bag. Object nodes are the only nodes
	// stored in a Registry.
	KindObject

	// KindReference stands in for an object node registered (or about to be
	// registered) under the same id. It carries no structure of its own.
	KindReference

	// KindVoid marks an absent result type.
	KindVoid
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindEnumeration:
		return "enumeration"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindReference:
		return "reference"
	case KindVoid:
		return "void"
	default:
		return "unknown"
	}
}

// Property is one named member of an object node. Order is declaration order
// and is preserved through marshaling.
type Property struct {
	Name string
	Node *Node
}

// Node is a single schema node. Which fields are meaningful depends on Kind.
type Node struct {
	Kind Kind

	// Type is the scalar subtype for primitives: "integer", "number",
	// "string", or "boolean". Enumeration nodes always use "string".
	Type string

	// Format is an optional refinement of Type (e.g. "int64", "date-time").
	Format string

	// Example is an optional example value. For enumerations this is the
	// first literal.
	Example any

	// Enum holds the ordered literal names for enumeration nodes.
	Enum []string

	// Items is the element schema for array nodes.
	Items *Node

	// ID identifies object nodes and is the target of reference nodes.
	ID string

	// Properties holds the ordered members of an object node. Property
	// values are never inline object nodes; nested structure is expressed
	// through reference nodes.
	Properties []Property

	// Description is optional human-readable text supplied by a
	// documentation provider.
	Description string
}

// Primitive returns a primitive node.
func Primitive(typ, format string, example any) *Node {
	return &Node{Kind: KindPrimitive, Type: typ, Format: format, Example: example}
}

// Enumeration returns an enumeration node over the given literals.
// The example is the first literal.
func Enumeration(literals []string) *Node {
	n := &Node{Kind: KindEnumeration, Type: "string", Enum: literals}
	if len(literals) > 0 {
		n.Example = literals[0]
	}
	return n
}

// Array returns an array node with the given item schema.
func Array(items *Node) *Node {
	return &Node{Kind: KindArray, Items: items}
}

// Object returns an object node with the given id and ordered properties.
func Object(id string, properties []Property) *Node {
	return &Node{Kind: KindObject, ID: id, Properties: properties}
}

// Ref returns a reference node carrying only the target id.
func Ref(id string) *Node {
	return &Node{Kind: KindReference, ID: id}
}

// Void returns a void node marking an absent result type.
func Void() *Node {
	return &Node{Kind: KindVoid}
}

// Clone returns a shallow copy of the node. Items, Properties, and Enum are
// shared; callers that set per-occurrence fields (Description) on table-owned
// prototypes must clone first.
func (n *Node) Clone() *Node {
	c := *n
	return &c
}

// Enumer is implemented by types that enumerate a fixed set of string
// literals. The classifier treats any such type as an enumeration.
type Enumer interface {
	EnumValues() []string
}
