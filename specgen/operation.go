package specgen

import (
	"strings"

	"github.com/ozziepeeps/Swashbuckle"
	"github.com/ozziepeeps/Swashbuckle/internal/meta"
	"github.com/ozziepeeps/Swashbuckle/specgen/model"
	"github.com/ozziepeeps/Swashbuckle/specgen/schema"
)

// The operation builder is a thin consumer of the model engine: one
// operation descriptor per endpoint, with parameter and response types
// documented inline when primitive and by definition reference otherwise.

// operationPath returns the document path for a route template, stripping
// any query-string suffix and normalizing the leading slash.
func operationPath(route string) string {
	path, _, _ := strings.Cut(route, "?")
	return "/" + strings.TrimPrefix(path, "/")
}

// paramIn classifies a non-body parameter as path or query. This is a
// best-effort heuristic: a parameter name that is a substring of the route
// template counts as a path parameter, so a query parameter whose name
// happens to appear inside another route token is misclassified. Documented
// behavior, kept as-is.
func paramIn(path, name string) string {
	if strings.Contains(path, name) {
		return "path"
	}
	return "query"
}

// buildOperation assembles the descriptor for one endpoint.
func buildOperation(ep swashbuckle.ExportedEndpoint, models *model.Generator) (string, *OperationSpec) {
	m := ep.Meta
	path := operationPath(m.Route)

	op := &OperationSpec{
		ID:          ep.Service + "_" + ep.Name,
		Summary:     m.Summary,
		Description: m.Remarks,
		Tags:        []string{ep.Service},
		Responses:   map[string]*ResponseSpec{},
	}

	for _, p := range m.Params {
		op.Parameters = append(op.Parameters, buildParameter(path, p, models))
	}

	if m.Response == nil {
		op.Responses["204"] = &ResponseSpec{Description: "No Content"}
	} else {
		op.Responses["200"] = &ResponseSpec{
			Description: "OK",
			Schema:      refIfComplex(models.Generate(m.Response)),
		}
	}

	return path, op
}

// buildParameter documents one parameter, generating model specs for its
// type as a side effect.
func buildParameter(path string, p meta.ParamMetadata, models *model.Generator) *ParameterSpec {
	node := refIfComplex(models.Generate(p.Type))

	spec := &ParameterSpec{
		Name:     p.Name,
		Required: p.Required,
	}
	if p.Source == meta.SourceBody {
		spec.In = "body"
		spec.Schema = node
		return spec
	}

	spec.In = paramIn(path, p.Name)
	switch node.Kind {
	case schema.KindPrimitive:
		spec.Type = node.Type
		spec.Format = node.Format
	case schema.KindEnumeration:
		spec.Type = node.Type
		spec.Enum = node.Enum
	default:
		spec.Schema = node
	}
	return spec
}

// refIfComplex collapses a fully expanded object node to a reference; the
// full definition is already registered.
func refIfComplex(n *schema.Node) *schema.Node {
	if n.Kind == schema.KindObject {
		return schema.Ref(n.ID)
	}
	return n
}
