package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/rampinfotech/meetscribe/internal/config"
)

// Store persists finished meetings and the shared output index, backed by
// SQLite. The schema is declared explicitly in code and versioned through
// migrations; nothing is reflected at connection time.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the meeting database and applies
// migrations.
func Open(cfg config.StoreConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("ensure store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: cfg.Path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// migrations are applied in order; user_version tracks how far a database
// has been migrated.
var migrations = []string{
	`CREATE TABLE meetings (
        id               INTEGER PRIMARY KEY AUTOINCREMENT,
        title            TEXT NOT NULL,
        meeting_date     TEXT NOT NULL,
        duration_seconds REAL NOT NULL DEFAULT 0,
        audio_path       TEXT,
        transcript_path  TEXT,
        mom_path         TEXT,
        summary_text     TEXT,
        created_at       TEXT NOT NULL
    );
    CREATE TABLE participants (
        id            INTEGER PRIMARY KEY AUTOINCREMENT,
        meeting_id    INTEGER NOT NULL REFERENCES meetings(id) ON DELETE CASCADE,
        speaker_label TEXT NOT NULL,
        name          TEXT
    );
    CREATE TABLE action_items (
        id          INTEGER PRIMARY KEY AUTOINCREMENT,
        meeting_id  INTEGER NOT NULL REFERENCES meetings(id) ON DELETE CASCADE,
        title       TEXT NOT NULL,
        description TEXT,
        assigned_to TEXT,
        priority    TEXT NOT NULL DEFAULT 'Medium',
        status      TEXT NOT NULL DEFAULT 'Open',
        created_at  TEXT NOT NULL
    );
    CREATE TABLE counters (
        name  TEXT PRIMARY KEY,
        value INTEGER NOT NULL
    );`,
}

func (s *Store) applyMigrations(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := s.db.ExecContext(ctx, migrations[i]); err != nil {
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("set schema version %d: %w", i+1, err)
		}
	}

	return nil
}

// NextOutputIndex atomically increments and returns the shared output
// file index. Concurrent invocations each receive a distinct value.
func (s *Store) NextOutputIndex(ctx context.Context) (int, error) {
	var value int
	err := s.db.QueryRowContext(
		ctx,
		`INSERT INTO counters (name, value) VALUES ('output_index', 1)
         ON CONFLICT(name) DO UPDATE SET value = value + 1
         RETURNING value`,
	).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("next output index: %w", err)
	}
	return value, nil
}
