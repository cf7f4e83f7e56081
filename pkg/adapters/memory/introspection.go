package memory

import "github.com/aretw0/introspection"

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Groups int `json:"groups"`
	Notes  int `json:"notes"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RepositoryState{
		Groups: len(r.groups),
		Notes:  len(r.notes),
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
