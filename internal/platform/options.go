package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/pocket/pkg/core"
)

// options holds the internal configuration for the Pocket store.
type options struct {
	repository core.Repository
	logger     *slog.Logger
	adapter    string
	clock      func() time.Time
	config     map[string]interface{}
}

// Option defines a functional option for configuring Pocket.
type Option func(*options)

// defaultOptions returns the default configuration. The adapter is left
// unset here so the workspace config file can still claim it; Init falls
// back to "fs" when nobody does.
func defaultOptions() *options {
	return &options{
		repository: nil,
		logger:     nil,
		adapter:    "",
		config:     make(map[string]interface{}),
	}
}

// WithAutoInit enables automatic initialization of the workspace
// (creates the directory, and git init when versioning is on).
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.config["auto_init"] = auto
	}
}

// WithVersioning enables or disables git-backed history for slot writes.
// When not set, an existing .git directory in the workspace turns it on.
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		o.config["versioned"] = enabled
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithMustExist ensures the workspace directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithLogger sets the logger for the store and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. mock, remote).
// If provided, adapter selection is skipped entirely.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter allows specifying the storage adapter to use by name
// ("fs", "sqlite" or "memory"). Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".pocket").
// Defaults to ".pocket" if not set (handled by adapter).
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}

// WithEventBuffer allows specifying the size of each subscriber's event
// buffer. Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithClock overrides the time source used for note timestamps and IDs.
// Useful for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithWatcherErrorHandler registers a callback to handle errors occurring during the Watch loop.
// This allows applications to log or react to runtime watcher failures (e.g. permission denied)
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithDevSafety controls the "Sandbox" safety mechanism when running via `go run`.
// By default (true), Pocket forces a temporary directory to prevent accidental data loss.
// Setting this to false allows operating on the real filesystem even during `go run`.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}
