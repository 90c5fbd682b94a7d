package specgen

import (
	"github.com/ozziepeeps/Swashbuckle"
	"github.com/ozziepeeps/Swashbuckle/specgen/model"
	"github.com/ozziepeeps/Swashbuckle/specgen/schema"
)

// FilterContext gives filters read access to the endpoint being described
// and to the model generation state.
type FilterContext struct {
	// Endpoint is the endpoint description the operation was built from.
	Endpoint swashbuckle.ExportedEndpoint

	// Models is the engine used for this document; filters may generate
	// additional model specs through it.
	Models *model.Generator

	// Registry is the document's accumulated definitions table.
	Registry *schema.Registry
}

// OperationFilter mutates an assembled operation descriptor after it is
// built. Filters run in the order supplied; later filters see and may
// overwrite earlier filters' changes.
type OperationFilter interface {
	Apply(op *OperationSpec, ctx *FilterContext)
}

// OperationFilterFunc adapts a function to the OperationFilter interface.
type OperationFilterFunc func(op *OperationSpec, ctx *FilterContext)

// Apply implements OperationFilter.
func (f OperationFilterFunc) Apply(op *OperationSpec, ctx *FilterContext) {
	f(op, ctx)
}

// LegacyOperationFilter is the earlier filter interface, kept for backward
// compatibility. Legacy filters are adapted into the current interface at
// composition time and run after all current-generation filters, so their
// writes win.
type LegacyOperationFilter interface {
	ApplyOperation(op *OperationSpec, endpoint swashbuckle.ExportedEndpoint)
}

// legacyFilterAdapter folds a legacy filter into the current interface.
type legacyFilterAdapter struct {
	f LegacyOperationFilter
}

func (a legacyFilterAdapter) Apply(op *OperationSpec, ctx *FilterContext) {
	a.f.ApplyOperation(op, ctx.Endpoint)
}

// composeFilters builds the effective filter order: current-generation
// filters first, then legacy filters.
func composeFilters(filters []OperationFilter, legacy []LegacyOperationFilter) []OperationFilter {
	out := make([]OperationFilter, 0, len(filters)+len(legacy))
	out = append(out, filters...)
	for _, f := range legacy {
		out = append(out, legacyFilterAdapter{f: f})
	}
	return out
}
