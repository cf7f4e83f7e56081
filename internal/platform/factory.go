package platform

import (
	"context"

	"github.com/google/uuid"

	"github.com/aretw0/pocket/pkg/core"
	"github.com/aretw0/pocket/pkg/stamp"
)

// New wires a fully loaded store for the workspace at uri:
//
//	store, err := platform.New("./notes", platform.WithVersioning(true))
//
// The repository is built per the options (and the workspace config file),
// then the store is hydrated from it.
func New(uri string, opts ...Option) (*core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	// 1. Initialize environment (path, directories, git)
	repo, err := initRepo(uri, o)
	if err != nil {
		return nil, err
	}

	// 2. Wire the domain store
	logger := o.logger
	if logger != nil {
		// One correlation id per store lifetime keeps interleaved
		// workspace logs separable.
		logger = logger.With("session", uuid.NewString())
	}

	stamps := stamp.NewSource()
	if o.clock != nil {
		stamps = stamp.NewSource(stamp.WithClock(o.clock))
	}

	eventBuffer, _ := o.config["event_buffer"].(int)

	store := core.NewStore(repo, core.Config{
		Logger:      logger,
		Stamps:      stamps,
		EventBuffer: eventBuffer,
	})

	// 3. Hydrate
	if err := store.Load(context.Background()); err != nil {
		_ = store.Close()
		return nil, err
	}

	return store, nil
}
