package core

import "errors"

// Common errors.
var (
	// ErrEmptyName is returned when a group name is empty after trimming.
	// Callers typically treat it as a quiet no-op rather than a failure.
	ErrEmptyName = errors.New("group name is empty")

	// ErrDuplicateName is returned when a group name collides with an
	// existing one under case-insensitive comparison.
	ErrDuplicateName = errors.New("group name already exists")

	// ErrUnknownColor is returned when a requested color is not part of
	// the palette.
	ErrUnknownColor = errors.New("color is not in the palette")

	// ErrEmptyContent is returned when note content is empty or
	// whitespace-only. Callers typically treat it as a quiet no-op.
	ErrEmptyContent = errors.New("note content is empty")

	// ErrNoSelection is returned when an operation requires a selected
	// group and none is selected.
	ErrNoSelection = errors.New("no group is selected")

	// ErrCorruptState is reported by repositories when a stored slot
	// cannot be decoded. It is recoverable: the store falls back to an
	// empty collection for that slot.
	ErrCorruptState = errors.New("stored state is corrupt")

	// ErrNotLoaded is returned when a mutation is attempted before Load.
	ErrNotLoaded = errors.New("store is not loaded")

	// ErrAlreadyLoaded is returned by a second call to Load.
	ErrAlreadyLoaded = errors.New("store is already loaded")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store is closed")
)
