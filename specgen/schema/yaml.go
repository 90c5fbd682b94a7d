package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML serialization mirrors the JSON shape. It is implemented against
// yaml.Node so that object properties keep declaration order.

// MarshalYAML implements yaml.Marshaler.
func (n *Node) MarshalYAML() (any, error) {
	return n.yamlNode()
}

func (n *Node) yamlNode() (*yaml.Node, error) {
	switch n.Kind {
	case KindPrimitive:
		m := newYAMLMap()
		m.appendScalar("type", n.Type)
		if n.Format != "" {
			m.appendScalar("format", n.Format)
		}
		if n.Example != nil {
			if err := m.appendValue("example", n.Example); err != nil {
				return nil, err
			}
		}
		m.appendDescription(n.Description)
		return m.node, nil

	case KindEnumeration:
		m := newYAMLMap()
		m.appendScalar("type", n.Type)
		if err := m.appendValue("enum", n.Enum); err != nil {
			return nil, err
		}
		if n.Example != nil {
			if err := m.appendValue("example", n.Example); err != nil {
				return nil, err
			}
		}
		m.appendDescription(n.Description)
		return m.node, nil

	case KindArray:
		m := newYAMLMap()
		m.appendScalar("type", "array")
		items, err := n.Items.yamlNode()
		if err != nil {
			return nil, err
		}
		m.appendNode("items", items)
		m.appendDescription(n.Description)
		return m.node, nil

	case KindObject:
		m := newYAMLMap()
		m.appendScalar("id", n.ID)
		m.appendScalar("type", "object")
		m.appendDescription(n.Description)
		props := newYAMLMap()
		for _, p := range n.Properties {
			pn, err := p.Node.yamlNode()
			if err != nil {
				return nil, fmt.Errorf("property %s: %w", p.Name, err)
			}
			props.appendNode(p.Name, pn)
		}
		m.appendNode("properties", props.node)
		return m.node, nil

	case KindReference:
		m := newYAMLMap()
		m.appendScalar("$ref", DefinitionsRefPrefix+n.ID)
		m.appendDescription(n.Description)
		return m.node, nil

	case KindVoid:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil

	default:
		return nil, fmt.Errorf("schema: cannot marshal node of kind %d", n.Kind)
	}
}

// yamlMap builds a mapping node with stable key order.
type yamlMap struct {
	node *yaml.Node
}

func newYAMLMap() *yamlMap {
	return &yamlMap{node: &yaml.Node{Kind: yaml.MappingNode}}
}

func (m *yamlMap) appendScalar(key, value string) {
	m.appendNode(key, &yaml.Node{Kind: yaml.ScalarNode, Value: value})
}

func (m *yamlMap) appendValue(key string, value any) error {
	var v yaml.Node
	if err := v.Encode(value); err != nil {
		return err
	}
	m.appendNode(key, &v)
	return nil
}

func (m *yamlMap) appendNode(key string, value *yaml.Node) {
	m.node.Content = append(m.node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value)
}

func (m *yamlMap) appendDescription(desc string) {
	if desc != "" {
		m.appendScalar("description", desc)
	}
}
