package specgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ozziepeeps/Swashbuckle/specgen/schema"
)

// Info holds API-level metadata for the generated document.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

// ParameterSpec describes one operation parameter. Body parameters carry a
// full schema node; non-body parameters are typed inline when primitive and
// by schema otherwise.
type ParameterSpec struct {
	Name        string       `json:"name" yaml:"name"`
	In          string       `json:"in" yaml:"in"` // body | path | query
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool         `json:"required" yaml:"required"`
	Type        string       `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string       `json:"format,omitempty" yaml:"format,omitempty"`
	Enum        []string     `json:"enum,omitempty" yaml:"enum,omitempty"`
	Schema      *schema.Node `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// ResponseSpec describes one documented response.
type ResponseSpec struct {
	Description string       `json:"description" yaml:"description"`
	Schema      *schema.Node `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// OperationSpec is the assembled descriptor for one endpoint. Filters may
// mutate it freely before the document is sealed.
type OperationSpec struct {
	ID          string                   `json:"operationId" yaml:"operationId"`
	Summary     string                   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string                   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string                 `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []*ParameterSpec         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses   map[string]*ResponseSpec `json:"responses" yaml:"responses"`
}

// Document is one generated schema document: the accumulated definitions
// table plus one operation per endpoint, grouped by path.
type Document struct {
	Info     Info
	BasePath string

	paths       []*pathItem
	definitions []*schema.Node
}

type pathItem struct {
	path string
	ops  []*operationEntry
}

type operationEntry struct {
	method string // lower-case verb, as documents spell it
	op     *OperationSpec
}

// addOperation appends an operation under its path, keeping first-seen path
// and method order.
func (d *Document) addOperation(path, method string, op *OperationSpec) {
	method = strings.ToLower(method)
	for _, p := range d.paths {
		if p.path == path {
			p.ops = append(p.ops, &operationEntry{method: method, op: op})
			return
		}
	}
	d.paths = append(d.paths, &pathItem{
		path: path,
		ops:  []*operationEntry{{method: method, op: op}},
	})
}

// Paths returns the documented paths in first-seen order.
func (d *Document) Paths() []string {
	out := make([]string, len(d.paths))
	for i, p := range d.paths {
		out[i] = p.path
	}
	return out
}

// Operation returns the operation registered for a method and path, if any.
func (d *Document) Operation(method, path string) (*OperationSpec, bool) {
	method = strings.ToLower(method)
	for _, p := range d.paths {
		if p.path != path {
			continue
		}
		for _, e := range p.ops {
			if e.method == method {
				return e.op, true
			}
		}
	}
	return nil, false
}

// Definitions returns the definition table in registration order.
func (d *Document) Definitions() []*schema.Node {
	return d.definitions
}

// Definition returns the definition registered under id, if any.
func (d *Document) Definition(id string) (*schema.Node, bool) {
	for _, def := range d.definitions {
		if def.ID == id {
			return def, true
		}
	}
	return nil, false
}

// MarshalJSON emits the document with paths and definitions in stable order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"swagger":"2.0","info":`)

	info, err := json.Marshal(d.Info)
	if err != nil {
		return nil, err
	}
	buf.Write(info)

	if d.BasePath != "" {
		bp, err := json.Marshal(d.BasePath)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"basePath":`)
		buf.Write(bp)
	}

	buf.WriteString(`,"paths":{`)
	for i, p := range d.paths {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.path)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(":{")
		for j, e := range p.ops {
			if j > 0 {
				buf.WriteByte(',')
			}
			op, err := json.Marshal(e.op)
			if err != nil {
				return nil, fmt.Errorf("operation %s %s: %w", e.method, p.path, err)
			}
			fmt.Fprintf(&buf, "%q:", e.method)
			buf.Write(op)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')

	buf.WriteString(`,"definitions":{`)
	for i, def := range d.definitions {
		if i > 0 {
			buf.WriteByte(',')
		}
		val, err := json.Marshal(def)
		if err != nil {
			return nil, fmt.Errorf("definition %s: %w", def.ID, err)
		}
		fmt.Fprintf(&buf, "%q:", def.ID)
		buf.Write(val)
	}
	buf.WriteString("}}")

	return buf.Bytes(), nil
}

// MarshalYAML mirrors MarshalJSON, keeping key order via yaml.Node.
func (d *Document) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	appendYAML := func(key string, value any) error {
		var v yaml.Node
		if err := v.Encode(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key}, &v)
		return nil
	}

	if err := appendYAML("swagger", "2.0"); err != nil {
		return nil, err
	}
	if err := appendYAML("info", d.Info); err != nil {
		return nil, err
	}
	if d.BasePath != "" {
		if err := appendYAML("basePath", d.BasePath); err != nil {
			return nil, err
		}
	}

	paths := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range d.paths {
		item := &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range p.ops {
			var op yaml.Node
			if err := op.Encode(e.op); err != nil {
				return nil, fmt.Errorf("operation %s %s: %w", e.method, p.path, err)
			}
			item.Content = append(item.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: e.method}, &op)
		}
		paths.Content = append(paths.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: p.path}, item)
	}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "paths"}, paths)

	defs := &yaml.Node{Kind: yaml.MappingNode}
	for _, def := range d.definitions {
		var v yaml.Node
		if err := v.Encode(def); err != nil {
			return nil, fmt.Errorf("definition %s: %w", def.ID, err)
		}
		defs.Content = append(defs.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: def.ID}, &v)
	}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "definitions"}, defs)

	return root, nil
}
