package model

import (
	"reflect"
	"strings"

	"github.com/ozziepeeps/Swashbuckle/specgen/schema"
)

var enumerType = reflect.TypeOf((*schema.Enumer)(nil)).Elem()

// classify determines which production rule applies to a type and produces
// its schema node. Rules are tried in a fixed priority order: caller
// override, exact primitive table entry, enumeration, pointer unwrap,
// collection, scalar-kind primitive, complex.
//
// When deferIfComplex is set, a complex type is not expanded in place:
// it is enqueued for later expansion (membership check first) and a
// reference node is returned. This is what bounds recursion on cyclic
// type graphs - every complex type beyond the root expands at most once,
// through the drain loop.
func (g *Generator) classify(t reflect.Type, deferIfComplex bool, pending *pendingQueue) *schema.Node {
	if n, ok := g.overrides[t]; ok {
		return n
	}
	if n, ok := primitiveExact(t); ok {
		return n.Clone()
	}
	if literals, ok := enumLiterals(t); ok {
		return schema.Enumeration(literals)
	}
	if t.Kind() == reflect.Pointer {
		// Nullability is collapsed: the unwrapped type's schema stands in
		// for the wrapper.
		return g.classify(t.Elem(), deferIfComplex, pending)
	}
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		return schema.Array(g.classify(t.Elem(), true, pending))
	}
	if n, ok := primitiveKind(t); ok {
		return n.Clone()
	}

	if deferIfComplex {
		pending.add(t)
		return schema.Ref(schema.IDFor(t))
	}
	return g.buildObject(t, pending)
}

// buildObject expands a complex type into an object node, one level deep:
// property values are primitives, enumerations, arrays, or references,
// never inline objects. Non-struct complex types (maps, interfaces) yield
// a degenerate empty-property object, which is accepted behavior for
// opaque types.
func (g *Generator) buildObject(t reflect.Type, pending *pendingQueue) *schema.Node {
	var props []schema.Property
	if t.Kind() == reflect.Struct {
		props = g.collectProperties(t, pending, nil)
	}
	return schema.Object(schema.IDFor(t), props)
}

// collectProperties enumerates the accessible properties of a struct type.
// Embedded structs without a json tag are flattened the way encoding/json
// serializes them. Fields that cannot appear on the wire (unexported,
// json:"-", func/chan kinds) are excluded.
func (g *Generator) collectProperties(t reflect.Type, pending *pendingQueue, props []schema.Property) []schema.Property {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		jsonTag := f.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		if f.Anonymous && jsonTag == "" {
			et := f.Type
			for et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				props = g.collectProperties(et, pending, props)
				continue
			}
		}
		switch f.Type.Kind() {
		case reflect.Func, reflect.Chan, reflect.UnsafePointer:
			continue
		}

		node := g.classify(f.Type, true, pending)
		if g.docs != nil {
			if desc := g.docs.FieldDoc(t, f.Name); desc != "" {
				node = node.Clone()
				node.Description = desc
			}
		}
		props = append(props, schema.Property{Name: propertyName(f.Name, jsonTag), Node: node})
	}
	return props
}

// propertyName returns the wire name for a field, honoring the json tag.
func propertyName(fieldName, jsonTag string) string {
	if jsonTag == "" {
		return fieldName
	}
	if name, _, _ := strings.Cut(jsonTag, ","); name != "" {
		return name
	}
	return fieldName
}

// enumLiterals reports whether a type enumerates a fixed literal set,
// checking both value and pointer receivers.
func enumLiterals(t reflect.Type) ([]string, bool) {
	if t.Implements(enumerType) {
		return reflect.Zero(t).Interface().(schema.Enumer).EnumValues(), true
	}
	if t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(enumerType) {
		return reflect.New(t).Interface().(schema.Enumer).EnumValues(), true
	}
	return nil, false
}
