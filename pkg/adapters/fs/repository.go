package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/aretw0/lifecycle/pkg/core/supervisor"
	"github.com/aretw0/lifecycle/pkg/core/worker"

	"github.com/aretw0/pocket/pkg/core"
	"github.com/aretw0/pocket/pkg/git"
)

// DefaultSystemDir is the hidden directory for workspace metadata.
const DefaultSystemDir = ".pocket"

// Repository implements core.Repository on top of plain JSON slot files:
// one file per slot, written atomically, directly inside the workspace
// directory. With Versioned enabled every slot write is also committed to
// a local git repository for history.
type Repository struct {
	Path   string
	git    *git.Client
	config Config

	mu            sync.RWMutex
	checksums     map[string]string
	watcherActive bool
	lastReconcile *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path         string
	AutoInit     bool
	MustExist    bool
	Versioned    bool
	SystemDir    string // e.g. ".pocket"
	Logger       *slog.Logger
	ErrorHandler func(error)
}

// NewRepository creates a new filesystem-backed repository. It is cheap:
// no I/O happens until Initialize or one of the slot operations is called.
func NewRepository(config Config) *Repository {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	return &Repository{
		Path:      config.Path,
		git:       git.NewClient(config.Path, config.SystemDir+".lock", config.Logger),
		config:    config,
		checksums: make(map[string]string),
	}
}

// Initialize performs the necessary setup for the repository
// (mkdir, system dir, git init when versioned).
func (r *Repository) Initialize(ctx context.Context) error {
	// 1. Directory Initialization
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("workspace path does not exist: %s", r.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat workspace path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("workspace path is not a directory: %s", r.Path)
		}
	} else {
		if err := os.MkdirAll(r.Path, 0755); err != nil {
			return fmt.Errorf("failed to create workspace directory: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Join(r.Path, r.config.SystemDir), 0755); err != nil {
		return fmt.Errorf("failed to create system directory: %w", err)
	}

	// 2. Git Initialization
	if r.config.Versioned {
		if !git.IsInstalled() {
			return fmt.Errorf("git is not installed")
		}

		wasNewRepo := false
		if !r.git.IsRepo() {
			if r.config.AutoInit {
				if err := r.git.Init(); err != nil {
					return fmt.Errorf("failed to git init: %w", err)
				}
				wasNewRepo = true
			} else {
				return fmt.Errorf("path is not a git repository: %s", r.Path)
			}
		}

		// Keep system files out of history
		mod, err := r.ensureIgnore()
		if err != nil {
			return fmt.Errorf("failed to ensure .gitignore: %w", err)
		}

		if mod && wasNewRepo {
			// If we just created the repo, commit the .gitignore to start clean
			if err := r.git.Add(".gitignore"); err != nil {
				return fmt.Errorf("failed to add .gitignore: %w", err)
			}
			if err := r.git.Commit(fmt.Sprintf("chore: configure %s ignore", r.config.SystemDir)); err != nil {
				return fmt.Errorf("failed to commit .gitignore: %w", err)
			}
		}
	}

	return nil
}

func (r *Repository) ensureIgnore() (bool, error) {
	ignorePath := filepath.Join(r.Path, ".gitignore")
	entries := []string{
		r.config.SystemDir + "/",
		r.config.SystemDir + ".lock",
		TempFilePrefix + "*",
		"*.corrupt",
	}

	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	present := make(map[string]bool)
	for _, line := range strings.Split(string(content), "\n") {
		present[strings.TrimSpace(line)] = true
	}

	var missing []string
	for _, entry := range entries {
		if !present[entry] {
			missing = append(missing, entry)
		}
	}
	if len(missing) == 0 {
		return false, nil
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return false, err
		}
	}

	for _, entry := range missing {
		if _, err := f.WriteString(entry + "\n"); err != nil {
			return false, err
		}
	}

	return true, nil
}

// LoadGroups reads the groups slot. A missing file yields an empty
// collection; an undecodable file is quarantined and reported as
// core.ErrCorruptState.
func (r *Repository) LoadGroups(ctx context.Context) ([]core.Group, error) {
	var groups []core.Group
	if err := r.loadSlot(core.SlotGroups, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// SaveGroups replaces the groups slot file.
func (r *Repository) SaveGroups(ctx context.Context, groups []core.Group) error {
	if groups == nil {
		groups = []core.Group{}
	}
	return r.saveSlot(ctx, core.SlotGroups, groups)
}

// LoadNotes reads the notes slot. Same contract as LoadGroups.
func (r *Repository) LoadNotes(ctx context.Context) ([]core.Note, error) {
	var notes []core.Note
	if err := r.loadSlot(core.SlotNotes, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// SaveNotes replaces the notes slot file.
func (r *Repository) SaveNotes(ctx context.Context, notes []core.Note) error {
	if notes == nil {
		notes = []core.Note{}
	}
	return r.saveSlot(ctx, core.SlotNotes, notes)
}

// Watch emits a core.EventStorageChanged whenever a slot file changes on
// disk through some other process. The repository's own writes are
// recognized by checksum and suppressed. The watch worker runs under a
// supervisor and is restarted with backoff if it fails; the channel is
// closed once ctx is cancelled and the worker has drained.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	if _, err := os.Stat(r.Path); err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", r.Path, err)
	}

	events := make(chan core.Event, 16)

	spec := supervisor.Spec{
		Name: "fs-watcher",
		Type: string(worker.TypeGoroutine),
		Factory: func() (worker.Worker, error) {
			return newWatchWorker(r, events), nil
		},
		Backoff: supervisor.Backoff{
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     5 * time.Second,
			Multiplier:      2,
			ResetDuration:   30 * time.Second,
			MaxRestarts:     5,
			MaxDuration:     time.Minute,
		},
		RestartPolicy: supervisor.RestartOnFailure,
	}

	sup := supervisor.New("fs-watcher", supervisor.StrategyOneForOne, spec)
	if err := sup.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start watcher: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := sup.Stop(stopCtx)
		close(events)
		return err
	}, lifecycle.WithErrorHandler(func(err error) {
		if r.config.Logger != nil {
			r.config.Logger.Error("watcher shutdown failed", "error", err)
		}
	}))

	return events, nil
}

// History returns the recorded slot commits, newest first.
func (r *Repository) History(ctx context.Context, limit int) ([]string, error) {
	if !r.config.Versioned {
		return nil, fmt.Errorf("history requires versioned mode")
	}
	return r.git.Log(limit)
}

func (r *Repository) slotPath(slot string) string {
	return filepath.Join(r.Path, slot+".json")
}

func (r *Repository) loadSlot(slot string, v any) error {
	path := r.slotPath(slot)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read slot %s: %w", slot, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return r.quarantine(slot, path, err)
	}
	r.rememberContent(slot, data)
	return nil
}

// quarantine moves an undecodable slot file aside so the next write
// starts clean, and reports the corruption as recoverable.
func (r *Repository) quarantine(slot, path string, cause error) error {
	corruptPath := path + ".corrupt"
	if err := os.Rename(path, corruptPath); err != nil {
		if r.config.Logger != nil {
			r.config.Logger.Warn("failed to quarantine corrupt slot", "slot", slot, "error", err)
		}
	} else if r.config.Logger != nil {
		r.config.Logger.Warn("quarantined corrupt slot", "slot", slot, "moved_to", corruptPath)
	}
	return fmt.Errorf("slot %s: %w: %v", slot, core.ErrCorruptState, cause)
}

func (r *Repository) saveSlot(ctx context.Context, slot string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize slot %s: %w", slot, err)
	}
	data = append(data, '\n')

	// Record the checksum before the rename lands so a fast watcher
	// delivery cannot observe the write as external.
	path := r.slotPath(slot)
	r.rememberContent(slot, data)
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", slot, err)
	}

	if r.config.Logger != nil {
		r.config.Logger.Debug("slot written", "slot", slot, "bytes", len(data))
	}

	if r.config.Versioned {
		// History is best-effort: the slot file is already durable, so a
		// failed commit must not look like a failed save to the caller.
		if err := r.commitSlot(ctx, slot); err != nil {
			if r.config.Logger != nil {
				r.config.Logger.Warn("failed to record history", "slot", slot, "error", err)
			}
		}
	}
	return nil
}

func (r *Repository) commitSlot(ctx context.Context, slot string) error {
	unlock, err := r.git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	if err := r.git.Add(slot + ".json"); err != nil {
		return fmt.Errorf("failed to git add: %w", err)
	}

	msg := "update " + slot
	if val, ok := ctx.Value(core.ChangeReasonKey).(string); ok && val != "" {
		msg = val
	}
	if err := r.git.Commit(msg); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	return nil
}

// rememberContent records the checksum of slot content this process has
// written or read, so the watcher can tell genuine external changes from
// echoes of its own activity.
func (r *Repository) rememberContent(slot string, data []byte) {
	sum := checksum(data)

	r.mu.Lock()
	r.checksums[slot] = sum
	r.mu.Unlock()
}

// contentUnchanged reports whether the slot file currently on disk still
// matches the content this process last wrote or read.
func (r *Repository) contentUnchanged(slot string) bool {
	r.mu.RLock()
	recorded, ok := r.checksums[slot]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	data, err := os.ReadFile(r.slotPath(slot))
	if err != nil {
		return false
	}
	return checksum(data) == recorded
}

// slotForPath maps an absolute file path to the slot it stores, if any.
func (r *Repository) slotForPath(path string) (string, bool) {
	rel, err := filepath.Rel(r.Path, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)

	for _, slot := range []string{core.SlotGroups, core.SlotNotes} {
		if rel == slot+".json" {
			return slot, true
		}
	}
	return "", false
}

// reconcile checks every slot for external changes that may have been
// missed while event processing was paused. It returns one event per
// slot whose on-disk content no longer matches the last known state.
func (r *Repository) reconcile() []core.Event {
	var events []core.Event
	for _, slot := range []string{core.SlotGroups, core.SlotNotes} {
		if _, err := os.Stat(r.slotPath(slot)); err != nil {
			continue
		}
		if r.contentUnchanged(slot) {
			continue
		}
		events = append(events, core.Event{
			Type:      core.EventStorageChanged,
			ID:        slot,
			Timestamp: time.Now().Unix(),
		})
	}
	r.recordReconcile()
	return events
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
