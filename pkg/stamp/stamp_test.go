package stamp_test

import (
	"sort"
	"testing"
	"time"

	"github.com/aretw0/pocket/pkg/stamp"
)

func TestSource_NewID_UniqueWithinTick(t *testing.T) {
	// Freeze the clock so every id lands in the same millisecond.
	fixed := time.Date(2023, time.March, 9, 15, 4, 5, 0, time.UTC)
	src := stamp.NewSource(stamp.WithClock(func() time.Time { return fixed }))

	const n = 1000
	ids := make([]string, 0, n)
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		id := src.NewID()
		if seen[id] {
			t.Fatalf("duplicate id %q at iteration %d", id, i)
		}
		seen[id] = true
		ids = append(ids, id)
	}

	// Monotonic entropy keeps same-tick ids lexically ordered.
	if !sort.StringsAreSorted(ids) {
		t.Error("expected ids to be lexically ordered within one tick")
	}
}

func TestSource_IDEmbedsInstant(t *testing.T) {
	fixed := time.Date(2024, time.July, 1, 8, 30, 0, 0, time.UTC)
	src := stamp.NewSource(stamp.WithClock(func() time.Time { return fixed }))

	got, err := stamp.Time(src.NewID())
	if err != nil {
		t.Fatalf("Time failed: %v", err)
	}
	if !got.Equal(fixed.Truncate(time.Millisecond)) {
		t.Errorf("expected embedded instant %v, got %v", fixed, got)
	}
}

func TestTime_RejectsGarbage(t *testing.T) {
	if _, err := stamp.Time("not-a-ulid"); err == nil {
		t.Error("expected error for malformed id")
	}
}

func TestLabels(t *testing.T) {
	at := time.Date(2023, time.March, 9, 15, 4, 0, 0, time.UTC)

	if got := stamp.DateLabel(at); got != "9 Mar 2023" {
		t.Errorf("DateLabel = %q, want %q", got, "9 Mar 2023")
	}
	if got := stamp.TimeLabel(at); got != "3:04 PM" {
		t.Errorf("TimeLabel = %q, want %q", got, "3:04 PM")
	}

	morning := time.Date(2023, time.December, 25, 0, 7, 0, 0, time.UTC)
	if got := stamp.TimeLabel(morning); got != "12:07 AM" {
		t.Errorf("TimeLabel = %q, want %q", got, "12:07 AM")
	}
	if got := stamp.DateLabel(morning); got != "25 Dec 2023" {
		t.Errorf("DateLabel = %q, want %q", got, "25 Dec 2023")
	}
}

func TestSource_Now(t *testing.T) {
	fixed := time.Date(2022, time.January, 2, 3, 4, 5, 0, time.UTC)
	src := stamp.NewSource(stamp.WithClock(func() time.Time { return fixed }))

	if got := src.Now(); !got.Equal(fixed) {
		t.Errorf("Now = %v, want %v", got, fixed)
	}
}
