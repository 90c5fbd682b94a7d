package model

import (
	"reflect"
	"time"

	"github.com/ozziepeeps/Swashbuckle/specgen/schema"
)

// The primitive table maps well-known scalar types to prebuilt schema
// fragments. Exact type entries are consulted first so that types like
// time.Time are never mistaken for property bags; kind entries cover the
// builtin scalars and named scalar types that carry no enum literals.
// The table is read-only; classification hands out clones.

var primitivesByType = map[reflect.Type]*schema.Node{
	reflect.TypeOf(time.Time{}):      schema.Primitive("string", "date-time", "2016-01-01T00:00:00Z"),
	reflect.TypeOf(time.Duration(0)): schema.Primitive("integer", "int64", 0),
	reflect.TypeOf([]byte(nil)):      schema.Primitive("string", "byte", nil),
}

var primitivesByKind = map[reflect.Kind]*schema.Node{
	reflect.Bool:    schema.Primitive("boolean", "", true),
	reflect.Int:     schema.Primitive("integer", "int32", 0),
	reflect.Int8:    schema.Primitive("integer", "int32", 0),
	reflect.Int16:   schema.Primitive("integer", "int32", 0),
	reflect.Int32:   schema.Primitive("integer", "int32", 0),
	reflect.Int64:   schema.Primitive("integer", "int64", 0),
	reflect.Uint:    schema.Primitive("integer", "int32", 0),
	reflect.Uint8:   schema.Primitive("integer", "int32", 0),
	reflect.Uint16:  schema.Primitive("integer", "int32", 0),
	reflect.Uint32:  schema.Primitive("integer", "int32", 0),
	reflect.Uint64:  schema.Primitive("integer", "int64", 0),
	reflect.Float32: schema.Primitive("number", "float", 0.0),
	reflect.Float64: schema.Primitive("number", "double", 0.0),
	reflect.String:  schema.Primitive("string", "", "string"),
}

// primitiveExact returns the prebuilt node for an exact type table entry.
func primitiveExact(t reflect.Type) (*schema.Node, bool) {
	n, ok := primitivesByType[t]
	return n, ok
}

// primitiveKind returns the prebuilt node for a scalar kind.
func primitiveKind(t reflect.Type) (*schema.Node, bool) {
	n, ok := primitivesByKind[t.Kind()]
	return n, ok
}
