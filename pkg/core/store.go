package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/pocket/pkg/stamp"
)

// DefaultEventBuffer is the per-subscriber event channel capacity used
// when Config.EventBuffer is zero.
const DefaultEventBuffer = 100

// Config holds the construction parameters for a Store.
type Config struct {
	Logger      *slog.Logger
	Stamps      *stamp.Source
	EventBuffer int
}

// Store owns the group and note collections and keeps them synchronized
// with durable storage. Every mutation is written through to the
// Repository before it returns; callers never observe memory and storage
// disagreeing. All operations are safe for concurrent use.
type Store struct {
	repo   Repository
	stamps *stamp.Source
	logger *slog.Logger

	mu     sync.RWMutex
	groups []Group
	notes  []Note

	loaded    bool
	closed    bool
	orphans   int
	recovered []string

	eventBuffer   int
	subs          []chan Event
	dropped       int
	forwarding    bool
	forwardCancel context.CancelFunc
	done          chan struct{}
}

// NewStore creates a Store on top of the given repository. Call Load
// before mutating; mutations against an unloaded store are rejected to
// protect the durable slots from being overwritten with partial state.
func NewStore(repo Repository, cfg Config) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	stamps := cfg.Stamps
	if stamps == nil {
		stamps = stamp.NewSource()
	}
	buffer := cfg.EventBuffer
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}

	return &Store{
		repo:        repo,
		stamps:      stamps,
		logger:      logger,
		eventBuffer: buffer,
		done:        make(chan struct{}),
	}
}

// Load rehydrates the collections from storage. It runs once; a second
// call returns ErrAlreadyLoaded. A corrupt slot is recovered to an empty
// collection and recorded (see CorruptRecovered) instead of failing the
// load.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.loaded {
		return ErrAlreadyLoaded
	}

	groups, err := s.repo.LoadGroups(ctx)
	if err != nil {
		if !errors.Is(err, ErrCorruptState) {
			return fmt.Errorf("failed to load groups: %w", err)
		}
		s.logger.Warn("recovered corrupt groups slot", "error", err)
		s.recovered = append(s.recovered, SlotGroups)
		groups = nil
	}

	notes, err := s.repo.LoadNotes(ctx)
	if err != nil {
		if !errors.Is(err, ErrCorruptState) {
			return fmt.Errorf("failed to load notes: %w", err)
		}
		s.logger.Warn("recovered corrupt notes slot", "error", err)
		s.recovered = append(s.recovered, SlotNotes)
		notes = nil
	}

	s.groups = groups
	s.notes = notes
	s.loaded = true

	s.orphans = s.countOrphansLocked()
	if s.orphans > 0 {
		s.logger.Warn("notes reference unknown groups", "count", s.orphans)
	}

	s.logger.Debug("store loaded", "groups", len(s.groups), "notes", len(s.notes))
	return nil
}

// CreateGroup validates, stamps, appends and persists a new group.
// The name is trimmed; an empty result yields ErrEmptyName. Names are
// unique under case-insensitive comparison. An empty color resolves to
// DefaultColor; anything outside the palette yields ErrUnknownColor.
func (s *Store) CreateGroup(ctx context.Context, name string, color Color) (Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Group{}, ErrClosed
	}
	if !s.loaded {
		return Group{}, ErrNotLoaded
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Group{}, ErrEmptyName
	}

	for _, g := range s.groups {
		if strings.EqualFold(g.Name, trimmed) {
			return Group{}, fmt.Errorf("%w: %q", ErrDuplicateName, trimmed)
		}
	}

	if color == "" {
		color = DefaultColor
	}
	if !color.Valid() {
		return Group{}, fmt.Errorf("%w: %q", ErrUnknownColor, color)
	}

	group := Group{
		ID:       s.stamps.NewID(),
		Name:     trimmed,
		Color:    color,
		Initials: Initials(trimmed),
	}

	s.groups = append(s.groups, group)
	if err := s.repo.SaveGroups(ctx, s.groups); err != nil {
		s.groups = s.groups[:len(s.groups)-1]
		return Group{}, fmt.Errorf("failed to persist groups: %w", err)
	}

	s.emitLocked(Event{Type: EventGroupCreated, ID: group.ID, Timestamp: s.stamps.Now().Unix()})
	s.logger.Debug("group created", "id", group.ID, "name", group.Name)
	return group, nil
}

// AddNote stamps, appends and persists a new note for the given group.
// Whitespace-only content yields ErrEmptyContent; the content is stored
// as given otherwise. The group id is not checked against existing
// groups: a note may reference a group this store has never seen.
func (s *Store) AddNote(ctx context.Context, groupID, content string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Note{}, ErrClosed
	}
	if !s.loaded {
		return Note{}, ErrNotLoaded
	}

	if strings.TrimSpace(content) == "" {
		return Note{}, ErrEmptyContent
	}

	now := s.stamps.Now()
	note := Note{
		ID:      s.stamps.NewID(),
		GroupID: groupID,
		Content: content,
		Date:    stamp.DateLabel(now),
		Time:    stamp.TimeLabel(now),
	}

	s.notes = append(s.notes, note)
	if err := s.repo.SaveNotes(ctx, s.notes); err != nil {
		s.notes = s.notes[:len(s.notes)-1]
		return Note{}, fmt.Errorf("failed to persist notes: %w", err)
	}

	if _, ok := s.findGroupLocked(groupID); !ok {
		s.orphans++
	}

	s.emitLocked(Event{Type: EventNoteAdded, ID: note.ID, Timestamp: now.Unix()})
	s.logger.Debug("note added", "id", note.ID, "group", groupID)
	return note, nil
}

// ListGroups returns all groups in insertion order.
func (s *Store) ListGroups() []Group {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Group, len(s.groups))
	copy(out, s.groups)
	return out
}

// ListNotes returns the notes of one group in insertion order.
func (s *Store) ListNotes(groupID string) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Note
	for _, n := range s.notes {
		if n.GroupID == groupID {
			out = append(out, n)
		}
	}
	return out
}

// ListAllNotes returns every note in insertion order, regardless of group.
func (s *Store) ListAllNotes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// GetGroup looks up a group by id.
func (s *Store) GetGroup(id string) (Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findGroupLocked(id)
}

// OrphanedNotes reports how many notes reference a group that does not
// exist in this store.
func (s *Store) OrphanedNotes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orphans
}

// CorruptRecovered lists the slots that were recovered from corruption
// during Load, in load order.
func (s *Store) CorruptRecovered() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.recovered))
	copy(out, s.recovered)
	return out
}

// Watch subscribes to store events: one event per committed mutation, in
// mutation order, plus reload notifications when storage changes
// externally. The channel is buffered; events for subscribers that fall
// behind are dropped with a warning. The channel closes when ctx is
// cancelled or the store is closed.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	ch := make(chan Event, s.eventBuffer)
	s.subs = append(s.subs, ch)
	s.ensureForwardingLocked()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			s.unsubscribe(ch)
		case <-s.done:
		}
		return nil
	})

	return ch, nil
}

// History returns recorded change descriptions if the repository keeps
// them, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]string, error) {
	v, ok := s.repo.(Versioned)
	if !ok {
		return nil, errors.New("repository does not support history")
	}
	return v.History(ctx, limit)
}

// Close stops event delivery, cancels storage watching and closes the
// repository if it supports closing. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.forwardCancel != nil {
		s.forwardCancel()
	}
	close(s.done)
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, ch := range subs {
		close(ch)
	}

	if closer, ok := s.repo.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close repository: %w", err)
		}
	}
	return nil
}

// ensureForwardingLocked starts relaying external storage changes into
// store events. Requires s.mu held for writing.
func (s *Store) ensureForwardingLocked() {
	if s.forwarding {
		return
	}
	w, ok := s.repo.(Watchable)
	if !ok {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	events, err := w.Watch(ctx)
	if err != nil {
		cancel()
		s.logger.Warn("storage watch unavailable", "error", err)
		return
	}

	s.forwarding = true
	s.forwardCancel = cancel

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				if e.Type != EventStorageChanged {
					continue
				}
				if err := s.reloadSlot(ctx, e.ID); err != nil {
					s.logger.Warn("failed to reload after external change", "slot", e.ID, "error", err)
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("storage watch forwarding failed", "error", err)
	}))
}

// reloadSlot rehydrates one slot from storage and emits EventReloaded.
// A failed reload (including a corrupt slot) keeps the current in-memory
// collection, which remains authoritative.
func (s *Store) reloadSlot(ctx context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !s.loaded {
		return nil
	}

	switch slot {
	case SlotGroups:
		groups, err := s.repo.LoadGroups(ctx)
		if err != nil {
			return fmt.Errorf("failed to reload groups: %w", err)
		}
		s.groups = groups
	case SlotNotes:
		notes, err := s.repo.LoadNotes(ctx)
		if err != nil {
			return fmt.Errorf("failed to reload notes: %w", err)
		}
		s.notes = notes
	default:
		return nil
	}

	s.orphans = s.countOrphansLocked()
	s.emitLocked(Event{Type: EventReloaded, ID: slot, Timestamp: s.stamps.Now().Unix()})
	s.logger.Debug("slot reloaded", "slot", slot)
	return nil
}

func (s *Store) unsubscribe(ch chan Event) {
	s.mu.Lock()
	for i, sub := range s.subs {
		if sub == ch {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			s.mu.Unlock()
			close(ch)
			return
		}
	}
	s.mu.Unlock()
}

// emitLocked delivers an event to all subscribers without blocking the
// mutation path. Requires s.mu held for writing.
func (s *Store) emitLocked(e Event) {
	for _, ch := range s.subs {
		select {
		case ch <- e:
		default:
			s.dropped++
			s.logger.Warn("event dropped, subscriber too slow", "type", e.Type, "id", e.ID)
		}
	}
}

func (s *Store) findGroupLocked(id string) (Group, bool) {
	for _, g := range s.groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

func (s *Store) countOrphansLocked() int {
	known := make(map[string]bool, len(s.groups))
	for _, g := range s.groups {
		known[g.ID] = true
	}

	orphans := 0
	for _, n := range s.notes {
		if !known[n.GroupID] {
			orphans++
		}
	}
	return orphans
}
