package swashbuckle

import (
	"strings"

	"github.com/ozziepeeps/Swashbuckle/internal/meta"
)

// ExportedEndpoint contains the description of a registered endpoint for
// spec generation.
type ExportedEndpoint struct {
	Service string
	Name    string
	Meta    *meta.EndpointMetadata
}

// ExportEndpoints returns all registered endpoints in registration order.
// This is used by the specgen package.
func (a *App) ExportEndpoints() []ExportedEndpoint {
	a.mu.RLock()
	defer a.mu.RUnlock()

	exported := make([]ExportedEndpoint, 0, len(a.order))
	for _, key := range a.order {
		service, name, _ := strings.Cut(key, ".")
		m := a.routes[key].Metadata()
		if m.Route == "" {
			m.Route = service + "/" + name
		}
		exported = append(exported, ExportedEndpoint{
			Service: service,
			Name:    name,
			Meta:    m,
		})
	}
	return exported
}
