package core

// EventType represents the type of change in the workspace.
type EventType string

const (
	// EventGroupCreated fires after a group has been committed to storage.
	EventGroupCreated EventType = "GROUP_CREATED"

	// EventNoteAdded fires after a note has been committed to storage.
	EventNoteAdded EventType = "NOTE_ADDED"

	// EventReloaded fires after the store rehydrated a slot because of an
	// external storage change. ID carries the slot name.
	EventReloaded EventType = "RELOADED"

	// EventStorageChanged is emitted by watchable repositories when a slot
	// changes outside this process. ID carries the slot name.
	EventStorageChanged EventType = "STORAGE_CHANGED"
)

// Event represents a committed change in the workspace.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer so events can feed generic event sinks.
func (e Event) String() string {
	return string(e.Type) + " " + e.ID
}
