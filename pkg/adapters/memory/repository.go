// Package memory provides a minimal in-memory core.Repository intended
// for tests and examples. Nothing survives the process.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/pocket/pkg/core"
)

// Repository keeps both slots in process memory.
type Repository struct {
	mu     sync.RWMutex
	groups []core.Group
	notes  []core.Note
}

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{}
}

// Initialize is a no-op; there is nothing to set up.
func (r *Repository) Initialize(ctx context.Context) error {
	return nil
}

// LoadGroups returns a copy of the groups slot.
func (r *Repository) LoadGroups(ctx context.Context) ([]core.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]core.Group(nil), r.groups...), nil
}

// SaveGroups replaces the groups slot with a copy of the given slice.
func (r *Repository) SaveGroups(ctx context.Context, groups []core.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups = append([]core.Group(nil), groups...)
	return nil
}

// LoadNotes returns a copy of the notes slot.
func (r *Repository) LoadNotes(ctx context.Context) ([]core.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]core.Note(nil), r.notes...), nil
}

// SaveNotes replaces the notes slot with a copy of the given slice.
func (r *Repository) SaveNotes(ctx context.Context, notes []core.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append([]core.Note(nil), notes...)
	return nil
}
