package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Groups         int      `json:"groups"`
	Notes          int      `json:"notes"`
	OrphanedNotes  int      `json:"orphaned_notes"`
	Loaded         bool     `json:"loaded"`
	Recovered      []string `json:"recovered_slots,omitempty"`
	Subscribers    int      `json:"subscribers"`
	DroppedEvents  int      `json:"dropped_events"`
	RepositoryType string   `json:"repository_type"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		// Try to get component type if repository implements introspection.Component
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	recovered := make([]string, len(s.recovered))
	copy(recovered, s.recovered)

	return StoreState{
		Groups:         len(s.groups),
		Notes:          len(s.notes),
		OrphanedNotes:  s.orphans,
		Loaded:         s.loaded,
		Recovered:      recovered,
		Subscribers:    len(s.subs),
		DroppedEvents:  s.dropped,
		RepositoryType: repoType,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
