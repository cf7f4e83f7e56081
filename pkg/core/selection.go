package core

import "sync"

// Selection tracks which group, if any, is the current target for new
// notes. It lives for the process lifetime and has exactly two states:
// no selection (the zero value) and selected. The selected id is not
// validated against existing groups; a selection may point at a group
// that was never created or arrived from storage.
type Selection struct {
	mu      sync.RWMutex
	groupID string
	active  bool
}

// Select makes the given group the current target. It is a pure
// transition: whatever id the caller passes becomes the selection.
// Callers that treat an empty id as "deselect" route it to Clear.
func (s *Selection) Select(groupID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.groupID = groupID
	s.active = true
}

// Clear returns the selection to the no-selection state.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.groupID = ""
	s.active = false
}

// Current returns the selected group id, and whether a selection exists.
func (s *Selection) Current() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groupID, s.active
}
