// Package store persists the serialized app state in a local SQLite
// key-value table. The schema matches the desktop build's database so an
// existing financex.db hydrates unchanged.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // register sqlite driver
)

const (
	// DBFileName is the on-disk database name.
	DBFileName = "financex.db"

	stateKey = "app_state"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv_store (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Store is the SQLite-backed state blob store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the state database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadState returns the persisted state blob, or ok=false when no state
// has been saved yet.
func (s *Store) LoadState() (data []byte, ok bool, err error) {
	var value string
	err = s.db.QueryRow("SELECT value FROM kv_store WHERE key = ?", stateKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading state: %w", err)
	}
	return []byte(value), true, nil
}

// SaveState upserts the state blob.
func (s *Store) SaveState(data []byte) error {
	_, err := s.db.Exec(`INSERT INTO kv_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, stateKey, string(data))
	if err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}
