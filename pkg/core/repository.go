package core

import "context"

// Slot names in durable storage. Each slot holds one ordered collection.
const (
	SlotGroups = "pocketGroups"
	SlotNotes  = "pocketNotes"
)

// Repository defines the contract for persisting groups and notes.
// Adhering to this interface keeps the core independent of the underlying
// storage mechanism (filesystem, SQLite, memory, ...).
//
// The two slots are independent: adapters are not required to make a
// groups write and a notes write atomic with respect to each other. A
// missing slot yields an empty collection, not an error. Slices passed to
// Save methods are only valid for the duration of the call.
type Repository interface {
	// Initialize ensures the underlying storage is ready (create
	// directories, open database, run migrations).
	Initialize(ctx context.Context) error

	// LoadGroups returns all stored groups in insertion order.
	LoadGroups(ctx context.Context) ([]Group, error)

	// SaveGroups replaces the groups slot with the given ordered collection.
	SaveGroups(ctx context.Context, groups []Group) error

	// LoadNotes returns all stored notes in insertion order.
	LoadNotes(ctx context.Context) ([]Note, error)

	// SaveNotes replaces the notes slot with the given ordered collection.
	SaveNotes(ctx context.Context, notes []Note) error
}

// Watchable is implemented by repositories that can detect external
// changes to the stored slots.
type Watchable interface {
	// Watch emits an event whenever a slot changes outside this process.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan Event, error)
}

// Versioned is implemented by repositories that keep a local history of
// slot writes.
type Versioned interface {
	// History returns recorded change descriptions, newest first.
	History(ctx context.Context, limit int) ([]string, error)
}

type contextKey string

// ChangeReasonKey is the context key for passing a change description to
// adapters that record history.
const ChangeReasonKey contextKey = "change_reason"
