package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/pocket/pkg/adapters/fs"
	"github.com/aretw0/pocket/pkg/adapters/memory"
	"github.com/aretw0/pocket/pkg/adapters/sqlite"
	"github.com/aretw0/pocket/pkg/core"
)

// DatabaseFileName is where the sqlite adapter keeps its database,
// relative to the system directory.
const DatabaseFileName = "pocket.db"

// Init initializes a workspace repository based on the provided configuration.
// The 'uri' argument is the workspace directory for every built-in adapter;
// the sqlite adapter keeps its database file inside the system directory so
// all adapters share one visible layout.
//
// It returns the configured core.Repository.
func Init(uri string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initRepo(uri, o)
}

// initRepo builds and initializes the repository for already-parsed
// options. It may fill o.config with values read from the workspace config
// file, so callers that construct more than the repository see the merged
// result.
func initRepo(uri string, o *options) (core.Repository, error) {
	// 1. Check for injected repository
	if o.repository != nil {
		return o.repository, nil
	}

	// 2. Resolve the workspace path under dev safety rules
	tempDir, _ := o.config["temp_dir"].(bool)
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}
	useTemp := tempDir || (IsDevRun() && devSafety)
	path := ResolveWorkspacePath(uri, useTemp)

	systemDir, _ := o.config["system_dir"].(string)
	if systemDir == "" {
		systemDir = fs.DefaultSystemDir
	}

	if o.logger != nil && useTemp {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", uri, "resolved_path", path)
	}

	// 3. Merge the workspace config file; explicit options win
	fileCfg, err := LoadConfig(filepath.Join(path, systemDir, ConfigFileName))
	if err != nil {
		return nil, err
	}
	if o.adapter == "" {
		o.adapter = fileCfg.Adapter
	}
	if _, ok := o.config["versioned"]; !ok && fileCfg.Versioned != nil {
		o.config["versioned"] = *fileCfg.Versioned
	}
	if _, ok := o.config["event_buffer"]; !ok && fileCfg.EventBuffer > 0 {
		o.config["event_buffer"] = fileCfg.EventBuffer
	}

	// 4. Instantiate based on adapter
	var repo core.Repository

	switch o.adapter {
	case "", "fs":
		repo, err = initFS(path, systemDir, useTemp, o)
	case "sqlite":
		repo, err = initSQLite(path, systemDir, o)
	case "memory":
		repo = memory.NewRepository()
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, err
	}

	// 5. Run initialization
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}

	return repo, nil
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(path, systemDir string, useTemp bool, o *options) (core.Repository, error) {
	autoInit, _ := o.config["auto_init"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	// Versioning: explicit option or config file wins; otherwise an
	// existing .git directory means history is wanted.
	versioned, ok := o.config["versioned"].(bool)
	if !ok {
		if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
			versioned = true
			if o.logger != nil {
				o.logger.Debug("auto-detected versioned mode", "reason", ".git present")
			}
		}
	}

	return fs.NewRepository(fs.Config{
		Path:         path,
		AutoInit:     autoInit,
		MustExist:    mustExist || (!autoInit && !useTemp),
		Versioned:    versioned,
		SystemDir:    systemDir,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	}), nil
}

// initSQLite handles the initialization logic for the sqlite adapter.
func initSQLite(path, systemDir string, o *options) (core.Repository, error) {
	return sqlite.NewRepository(sqlite.Config{
		Path:   filepath.Join(path, systemDir, DatabaseFileName),
		Logger: o.logger,
	})
}
