// Package specgen derives machine-readable API documents from a running
// application: every registered endpoint becomes an operation and every
// request and response type becomes a model spec, with complex types
// collected into a shared definitions table.
package specgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ozziepeeps/Swashbuckle"
	"github.com/ozziepeeps/Swashbuckle/specgen/model"
	"github.com/ozziepeeps/Swashbuckle/specgen/schema"
	"github.com/ozziepeeps/Swashbuckle/specgen/sink"
)

// Generator assembles API documents from an App's endpoint registry.
// Configure it with the With* methods, then call Document, Handler, or
// ToDir. Configuration methods return the generator for chaining and are
// not safe to call concurrently with document assembly.
type Generator struct {
	app       *swashbuckle.App
	info      Info
	basePath  string
	overrides map[reflect.Type]*schema.Node
	docs      model.DocProvider
	filters   []OperationFilter
	legacy    []LegacyOperationFilter

	once    sync.Once
	cached  []byte
	cachedE error
}

// FromApp creates a Generator documenting app's endpoints.
func FromApp(app *swashbuckle.App) *Generator {
	return &Generator{
		app:  app,
		info: Info{Title: "API", Version: "v1"},
	}
}

// WithTitle sets the document title.
func (g *Generator) WithTitle(title string) *Generator {
	g.info.Title = title
	return g
}

// WithVersion sets the document version string.
func (g *Generator) WithVersion(version string) *Generator {
	g.info.Version = version
	return g
}

// WithDescription sets the document description.
func (g *Generator) WithDescription(desc string) *Generator {
	g.info.Description = desc
	return g
}

// WithBasePath sets the document base path.
func (g *Generator) WithBasePath(basePath string) *Generator {
	g.basePath = basePath
	return g
}

// WithOverride maps the type of sample to a hand-authored schema node,
// bypassing built-in classification for that type wherever it appears.
func (g *Generator) WithOverride(sample any, node *schema.Node) *Generator {
	if g.overrides == nil {
		g.overrides = make(map[reflect.Type]*schema.Node)
	}
	g.overrides[reflect.TypeOf(sample)] = node
	return g
}

// WithDocs attaches a documentation provider used to describe model
// properties.
func (g *Generator) WithDocs(p model.DocProvider) *Generator {
	g.docs = p
	return g
}

// WithOperationFilter appends a filter run over every assembled operation,
// in registration order.
func (g *Generator) WithOperationFilter(f OperationFilter) *Generator {
	g.filters = append(g.filters, f)
	return g
}

// WithLegacyOperationFilter appends a filter using the older endpoint-only
// callback shape. Legacy filters run after all current-style filters.
func (g *Generator) WithLegacyOperationFilter(f LegacyOperationFilter) *Generator {
	g.legacy = append(g.legacy, f)
	return g
}

// Document assembles a fresh document from the app's current endpoint
// registry. Each call uses its own definitions table, so documents built at
// different times never share mutable state.
func (g *Generator) Document() *Document {
	registry := schema.NewRegistry()
	models := model.New(model.Config{
		Registry:  registry,
		Overrides: g.overrides,
		Docs:      g.docs,
	})
	filters := composeFilters(g.filters, g.legacy)

	doc := &Document{
		Info:     g.info,
		BasePath: g.basePath,
	}

	for _, ep := range g.app.ExportEndpoints() {
		path, op := buildOperation(ep, models)
		for _, f := range filters {
			f.Apply(op, &FilterContext{
				Endpoint: ep,
				Models:   models,
				Registry: registry,
			})
		}
		doc.addOperation(path, ep.Meta.HTTPMethod, op)
	}

	doc.definitions = registry.Definitions()
	return doc
}

// Handler returns an http.Handler serving the document as JSON. The
// document is assembled once, on first request.
func (g *Generator) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.once.Do(func() {
			g.cached, g.cachedE = marshalIndentedJSON(g.Document())
		})
		if g.cachedE != nil {
			http.Error(w, "failed to generate document", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(g.cached)
	})
}

// ToDir writes the document to dir as swagger.json and swagger.yaml.
func (g *Generator) ToDir(ctx context.Context, dir string) error {
	return g.ToSink(ctx, sink.NewFilesystemSink(dir))
}

// ToSink writes the document to out as swagger.json and swagger.yaml.
func (g *Generator) ToSink(ctx context.Context, out sink.OutputSink) error {
	doc := g.Document()

	jsonBytes, err := marshalIndentedJSON(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document as JSON: %w", err)
	}
	if err := out.WriteFile(ctx, "swagger.json", jsonBytes); err != nil {
		return err
	}

	yamlBytes, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document as YAML: %w", err)
	}
	return out.WriteFile(ctx, "swagger.yaml", yamlBytes)
}

func marshalIndentedJSON(doc *Document) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
