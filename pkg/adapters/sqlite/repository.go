// Package sqlite persists slots as rows in a single-file SQLite database.
// It suits embedding the store where a scattering of JSON files in the
// workspace is unwanted; the fs adapter remains the default.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aretw0/pocket/pkg/core"
)

const driverName = "sqlite3"

const schema = `
CREATE TABLE IF NOT EXISTS slots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// Repository implements core.Repository on a single SQLite database file
// with one row per slot.
type Repository struct {
	Path   string
	db     *sql.DB
	config Config
}

// Config holds the configuration for the SQLite repository.
type Config struct {
	Path   string
	Logger *slog.Logger
}

// NewRepository creates a new SQLite-backed repository. It is cheap: the
// file is not touched until Initialize, which must run before the slot
// operations.
func NewRepository(config Config) (*Repository, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := sql.Open(driverName, config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Repository{
		Path:   config.Path,
		db:     db,
		config: config,
	}, nil
}

// Initialize creates the containing directory and the slots table.
func (r *Repository) Initialize(ctx context.Context) error {
	if dir := filepath.Dir(r.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if r.config.Logger != nil {
		r.config.Logger.Debug("database ready", "path", r.Path)
	}
	return nil
}

// LoadGroups reads the groups slot. A missing row yields an empty
// collection; an undecodable row is quarantined and reported as
// core.ErrCorruptState.
func (r *Repository) LoadGroups(ctx context.Context) ([]core.Group, error) {
	var groups []core.Group
	if err := r.loadSlot(ctx, core.SlotGroups, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// SaveGroups replaces the groups slot row.
func (r *Repository) SaveGroups(ctx context.Context, groups []core.Group) error {
	if groups == nil {
		groups = []core.Group{}
	}
	return r.saveSlot(ctx, core.SlotGroups, groups)
}

// LoadNotes reads the notes slot. Same contract as LoadGroups.
func (r *Repository) LoadNotes(ctx context.Context) ([]core.Note, error) {
	var notes []core.Note
	if err := r.loadSlot(ctx, core.SlotNotes, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// SaveNotes replaces the notes slot row.
func (r *Repository) SaveNotes(ctx context.Context, notes []core.Note) error {
	if notes == nil {
		notes = []core.Note{}
	}
	return r.saveSlot(ctx, core.SlotNotes, notes)
}

// Close releases the database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) loadSlot(ctx context.Context, slot string, v any) error {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, slot).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read slot %s: %w", slot, err)
	}

	if err := json.Unmarshal([]byte(value), v); err != nil {
		return r.quarantine(ctx, slot, err)
	}
	return nil
}

func (r *Repository) saveSlot(ctx context.Context, slot string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize slot %s: %w", slot, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		slot, string(data))
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", slot, err)
	}

	if r.config.Logger != nil {
		r.config.Logger.Debug("slot written", "slot", slot, "bytes", len(data))
	}
	return nil
}

// quarantine moves an undecodable slot row aside so the next write starts
// clean, and reports the corruption as recoverable.
func (r *Repository) quarantine(ctx context.Context, slot string, cause error) error {
	if err := r.moveCorrupt(ctx, slot); err != nil {
		if r.config.Logger != nil {
			r.config.Logger.Warn("failed to quarantine corrupt slot", "slot", slot, "error", err)
		}
	} else if r.config.Logger != nil {
		r.config.Logger.Warn("quarantined corrupt slot", "slot", slot, "moved_to", slot+".corrupt")
	}
	return fmt.Errorf("slot %s: %w: %v", slot, core.ErrCorruptState, cause)
}

func (r *Repository) moveCorrupt(ctx context.Context, slot string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO slots (key, value) SELECT key || '.corrupt', value FROM slots WHERE key = ?`,
		slot); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, slot); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
