package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSON serialization for schema nodes. Each kind marshals to the document
// fragment it represents; object properties are emitted in declaration
// order, which a plain map marshal would not preserve.

// DefinitionsRefPrefix is the ref path prefix under which registered object
// nodes appear in a generated document.
const DefinitionsRefPrefix = "#/definitions/"

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case KindPrimitive:
		return json.Marshal(&struct {
			Type        string `json:"type"`
			Format      string `json:"format,omitempty"`
			Example     any    `json:"example,omitempty"`
			Description string `json:"description,omitempty"`
		}{n.Type, n.Format, n.Example, n.Description})

	case KindEnumeration:
		return json.Marshal(&struct {
			Type        string   `json:"type"`
			Enum        []string `json:"enum"`
			Example     any      `json:"example,omitempty"`
			Description string   `json:"description,omitempty"`
		}{n.Type, n.Enum, n.Example, n.Description})

	case KindArray:
		return json.Marshal(&struct {
			Type        string `json:"type"`
			Items       *Node  `json:"items"`
			Description string `json:"description,omitempty"`
		}{"array", n.Items, n.Description})

	case KindObject:
		return n.marshalObject()

	case KindReference:
		return json.Marshal(&struct {
			Ref         string `json:"$ref"`
			Description string `json:"description,omitempty"`
		}{DefinitionsRefPrefix + n.ID, n.Description})

	case KindVoid:
		return []byte("null"), nil

	default:
		return nil, fmt.Errorf("schema: cannot marshal node of kind %d", n.Kind)
	}
}

// marshalObject emits an object node with properties in declaration order.
func (n *Node) marshalObject() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	id, err := json.Marshal(n.ID)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`"id":`)
	buf.Write(id)
	buf.WriteString(`,"type":"object"`)

	if n.Description != "" {
		desc, err := json.Marshal(n.Description)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"description":`)
		buf.Write(desc)
	}

	buf.WriteString(`,"properties":{`)
	for i, p := range n.Properties {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.Node)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", p.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteString("}}")

	return buf.Bytes(), nil
}
