package specgen

import (
	"reflect"
	"testing"

	"github.com/ozziepeeps/Swashbuckle"
	"github.com/ozziepeeps/Swashbuckle/internal/meta"
	"github.com/ozziepeeps/Swashbuckle/specgen/model"
	"github.com/ozziepeeps/Swashbuckle/specgen/schema"
)

func endpointFor(service, name string, m *meta.EndpointMetadata) swashbuckle.ExportedEndpoint {
	return swashbuckle.ExportedEndpoint{Service: service, Name: name, Meta: m}
}

type opOrder struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
}

type opStatus string

func (opStatus) EnumValues() []string {
	return []string{"pending", "shipped"}
}

func newTestModels(t *testing.T) *model.Generator {
	t.Helper()
	return model.New(model.Config{Registry: schema.NewRegistry()})
}

func TestOperationPath(t *testing.T) {
	tests := []struct {
		route string
		want  string
	}{
		{"orders", "/orders"},
		{"/orders", "/orders"},
		{"orders/{id}", "/orders/{id}"},
		{"orders?status={status}&page={page}", "/orders"},
		{"orders/{id}?expand={expand}", "/orders/{id}"},
	}
	for _, tt := range tests {
		if got := operationPath(tt.route); got != tt.want {
			t.Errorf("operationPath(%q) = %q, want %q", tt.route, got, tt.want)
		}
	}
}

func TestParamIn(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		param string
		want  string
	}{
		{"route token", "/orders/{id}", "id", "path"},
		{"query param", "/orders/{id}", "status", "query"},
		// A name that happens to appear inside another route token is
		// treated as a path parameter. Known limitation of the substring
		// heuristic.
		{"substring of token", "/orders/{id}", "order", "path"},
		{"substring of id token", "/orders/{id}", "d", "path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := paramIn(tt.path, tt.param); got != tt.want {
				t.Errorf("paramIn(%q, %q) = %q, want %q", tt.path, tt.param, got, tt.want)
			}
		})
	}
}

func TestBuildOperation_QueryEndpoint(t *testing.T) {
	models := newTestModels(t)
	ep := endpointFor("Orders", "Get", &meta.EndpointMetadata{
		HTTPMethod: "GET",
		Route:      "orders/{id}?status={status}",
		Params: []meta.ParamMetadata{
			{Name: "id", Source: meta.SourceRequest, Type: reflect.TypeOf(""), Required: true},
			{Name: "status", Source: meta.SourceRequest, Type: reflect.TypeOf(opStatus(""))},
		},
		Response: reflect.TypeOf(opOrder{}),
		Summary:  "Fetch one order.",
	})

	path, op := buildOperation(ep, models)

	if path != "/orders/{id}" {
		t.Fatalf("path = %q, want /orders/{id}", path)
	}
	if op.ID != "Orders_Get" {
		t.Errorf("operation id = %q, want Orders_Get", op.ID)
	}
	if len(op.Tags) != 1 || op.Tags[0] != "Orders" {
		t.Errorf("tags = %v, want [Orders]", op.Tags)
	}
	if op.Summary != "Fetch one order." {
		t.Errorf("summary = %q", op.Summary)
	}

	if len(op.Parameters) != 2 {
		t.Fatalf("got %d parameters, want 2", len(op.Parameters))
	}
	id := op.Parameters[0]
	if id.In != "path" || id.Type != "string" || !id.Required {
		t.Errorf("id parameter = %+v, want required path string", id)
	}
	status := op.Parameters[1]
	if status.In != "query" {
		t.Errorf("status parameter in = %q, want query", status.In)
	}
	if status.Type != "string" || len(status.Enum) != 2 {
		t.Errorf("status parameter = %+v, want string with 2 enum values", status)
	}

	res, ok := op.Responses["200"]
	if !ok {
		t.Fatal("missing 200 response")
	}
	if res.Schema == nil || res.Schema.Kind != schema.KindReference || res.Schema.ID != "opOrder" {
		t.Errorf("response schema = %+v, want reference to opOrder", res.Schema)
	}
	if _, ok := models.Registry().Get("opOrder"); !ok {
		t.Error("expected opOrder to be registered as a definition")
	}
}

func TestBuildOperation_BodyEndpoint(t *testing.T) {
	models := newTestModels(t)
	ep := endpointFor("Orders", "Create", &meta.EndpointMetadata{
		HTTPMethod: "POST",
		Route:      "orders",
		Params: []meta.ParamMetadata{
			{Name: "body", Source: meta.SourceBody, Type: reflect.TypeOf(opOrder{}), Required: true},
		},
		Response: reflect.TypeOf(opOrder{}),
	})

	_, op := buildOperation(ep, models)

	if len(op.Parameters) != 1 {
		t.Fatalf("got %d parameters, want 1", len(op.Parameters))
	}
	body := op.Parameters[0]
	if body.In != "body" || !body.Required {
		t.Errorf("body parameter = %+v, want required body", body)
	}
	if body.Schema == nil || body.Schema.Kind != schema.KindReference {
		t.Errorf("body schema = %+v, want reference", body.Schema)
	}
	if body.Type != "" {
		t.Errorf("body parameter should not carry an inline type, got %q", body.Type)
	}
}

func TestBuildOperation_NoResponseBody(t *testing.T) {
	models := newTestModels(t)
	ep := endpointFor("Orders", "Delete", &meta.EndpointMetadata{
		HTTPMethod: "DELETE",
		Route:      "orders/{id}",
		Params: []meta.ParamMetadata{
			{Name: "id", Source: meta.SourceRequest, Type: reflect.TypeOf(""), Required: true},
		},
	})

	_, op := buildOperation(ep, models)

	res, ok := op.Responses["204"]
	if !ok {
		t.Fatal("missing 204 response")
	}
	if res.Schema != nil {
		t.Errorf("204 response should have no schema, got %+v", res.Schema)
	}
	if _, ok := op.Responses["200"]; ok {
		t.Error("unexpected 200 response for bodiless endpoint")
	}
}

func TestBuildOperation_ArrayResponse(t *testing.T) {
	models := newTestModels(t)
	ep := endpointFor("Orders", "List", &meta.EndpointMetadata{
		HTTPMethod: "GET",
		Route:      "orders",
		Response:   reflect.TypeOf([]opOrder{}),
	})

	_, op := buildOperation(ep, models)

	res := op.Responses["200"]
	if res.Schema == nil || res.Schema.Kind != schema.KindArray {
		t.Fatalf("response schema = %+v, want array", res.Schema)
	}
	if res.Schema.Items == nil || res.Schema.Items.Kind != schema.KindReference {
		t.Errorf("array items = %+v, want reference", res.Schema.Items)
	}
	if _, ok := models.Registry().Get("opOrder"); !ok {
		t.Error("expected opOrder definition from array response")
	}
}
