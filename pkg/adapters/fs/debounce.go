package fs

import (
	"sync"
	"time"

	"github.com/aretw0/pocket/pkg/core"
)

// debouncer collapses bursts of events for the same key into a single
// delivery. Slot rewrites often surface as several filesystem events
// (create, write, rename) within a few milliseconds.
type debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	timers  map[string]*time.Timer
	wg      sync.WaitGroup
	stopped bool
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window: window,
		timers: make(map[string]*time.Timer),
	}
}

// add schedules fire for the event, resetting the window if an event with
// the same ID is already pending. The last event of a burst wins.
func (d *debouncer) add(e core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if prev, ok := d.timers[e.ID]; ok {
		if prev.Stop() {
			d.wg.Done()
		}
		// If Stop reported false the previous callback is already running;
		// it will notice it was superseded and skip its delivery.
	}

	d.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(d.window, func() {
		defer d.wg.Done()

		d.mu.Lock()
		if d.stopped || d.timers[e.ID] != timer {
			d.mu.Unlock()
			return
		}
		delete(d.timers, e.ID)
		d.mu.Unlock()

		fire(e)
	})
	d.timers[e.ID] = timer
}

// stopAndWait refuses further events and waits for in-flight timers to
// finish, up to the given timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for id, timer := range d.timers {
		if timer.Stop() {
			d.wg.Done()
		}
		delete(d.timers, id)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
