package sqlite

import (
	"github.com/aretw0/introspection"

	"github.com/aretw0/pocket/pkg/core"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path   string   `json:"path"`
	Driver string   `json:"driver"`
	Slots  []string `json:"slots"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	return RepositoryState{
		Path:   r.Path,
		Driver: driverName,
		Slots:  []string{core.SlotGroups, core.SlotNotes},
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
