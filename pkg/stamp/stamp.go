// Package stamp issues identifiers and creation labels for workspace
// entities.
//
// Identifiers are ULIDs: time-ordered and collision-resistant, so ids
// allocated within the same clock tick remain unique, and the creation
// instant of an entity stays recoverable from its id alone.
package stamp

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	dateLayout = "2 Jan 2006"
	timeLayout = "3:04 PM"
)

// Source allocates ids from a single monotonic entropy stream.
// The zero value is not usable; use NewSource.
type Source struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy *ulid.MonotonicEntropy
}

// Option defines a functional option for configuring a Source.
type Option func(*Source)

// WithClock overrides the wall clock. Useful for tests that need
// deterministic ids and labels.
func WithClock(now func() time.Time) Option {
	return func(s *Source) {
		s.now = now
	}
}

// NewSource creates a Source backed by crypto/rand.
func NewSource(opts ...Option) *Source {
	s := &Source{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.entropy = ulid.Monotonic(rand.Reader, 0)
	return s
}

// NewID returns a fresh ULID string. Ids issued by one Source are unique
// even within a single millisecond tick.
func (s *Source) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := ulid.Timestamp(s.now())
	id, err := ulid.New(ts, s.entropy)
	if err != nil {
		// Monotonic overflow within one tick. Fresh entropy keeps ids
		// unique at the cost of ordering inside that tick.
		id = ulid.MustNew(ts, rand.Reader)
	}
	return id.String()
}

// Now returns the Source's current clock reading.
func (s *Source) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now()
}

// DateLabel renders the display date snapshot for a creation instant,
// e.g. "9 Mar 2023".
func DateLabel(t time.Time) string {
	return t.Format(dateLayout)
}

// TimeLabel renders the display time snapshot for a creation instant,
// e.g. "3:04 PM".
func TimeLabel(t time.Time) string {
	return t.Format(timeLayout)
}

// Time recovers the creation instant embedded in an id, with millisecond
// precision.
func Time(id string) (time.Time, error) {
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse id %q: %w", id, err)
	}
	return ulid.Time(parsed.Time()), nil
}
