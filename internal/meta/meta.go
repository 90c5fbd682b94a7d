package meta

import "reflect"

// ParamSource classifies where an endpoint parameter is bound from.
type ParamSource string

const (
	// SourceBody marks a parameter carried in the request body.
	SourceBody ParamSource = "body"

	// SourceRequest marks a parameter carried outside the body (route or
	// query string); which of the two is decided per route template later.
	SourceRequest ParamSource = "request"
)

// ParamMetadata describes one endpoint parameter.
type ParamMetadata struct {
	Name     string
	Source   ParamSource
	Type     reflect.Type
	Required bool
}

// EndpointMetadata holds the runtime description of a registered endpoint.
// This type is internal so it cannot be instantiated by external packages,
// which allows us to seal the Endpoint interface.
type EndpointMetadata struct {
	// HTTPMethod is the HTTP verb the endpoint answers to.
	HTTPMethod string

	// Route is the route template, possibly carrying a query-string suffix
	// (e.g. "orders/{id}?expand={expand}").
	Route string

	// Params are the endpoint's parameters in declaration order.
	Params []ParamMetadata

	// Response is the return type, or nil when the endpoint returns no body.
	Response reflect.Type

	// Summary and Remarks are free-text endpoint documentation.
	Summary string
	Remarks string
}
