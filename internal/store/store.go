// Package store persists decisions and settings in a local SQLite file.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const memoryDSN = ":memory:"

// migrations[i] upgrades the schema from user_version i to i+1.
var migrations = []func(tx *sql.Tx) error{
	migrateV1,
}

var connPragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA foreign_keys=ON",
	"PRAGMA busy_timeout=5000",
}

type Store struct {
	db *sql.DB
}

// New opens (or creates) the database file at dbPath, creating its parent
// directory, and brings the schema up to date.
func New(dbPath string) (*Store, error) {
	if dbPath != memoryDSN {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbPath, err)
	}
	// Single connection: each invocation owns the file, and an in-memory
	// database only exists on its one connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(memoryDSN)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init() error {
	for _, p := range connPragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("exec %q: %w", p, err)
		}
	}
	if err := s.migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Store) schemaVersion() (int, error) {
	var v int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read user_version: %w", err)
	}
	return v, nil
}

// migrate applies each pending migration in its own transaction together
// with the user_version bump.
func (s *Store) migrate() error {
	version, err := s.schemaVersion()
	if err != nil {
		return err
	}
	for v := version; v < len(migrations); v++ {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if err := migrations[v](tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("v%d: %w", v+1, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("v%d: set user_version: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("v%d: commit: %w", v+1, err)
		}
	}
	return nil
}

func migrateV1(tx *sql.Tx) error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS decisions (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		title         TEXT NOT NULL,
		category      TEXT NOT NULL,
		impact        INTEGER NOT NULL CHECK (impact BETWEEN 1 AND 5),
		stress        INTEGER NOT NULL CHECK (stress BETWEEN 1 AND 5),
		created_date  TEXT NOT NULL,
		due_date      TEXT,
		resolved_date TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_decisions_resolved_date ON decisions(resolved_date);
	CREATE INDEX IF NOT EXISTS idx_decisions_created_date  ON decisions(created_date);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('report_top_n',     '10'),
		('default_category', 'general');
	`
	_, err := tx.Exec(ddl)
	return err
}

// DefaultDBPath returns <user config dir>/ddt/ddt.db
func DefaultDBPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "ddt", "ddt.db"), nil
}
