// Package sqlite implements a persistence backend on a local SQLite database.
// Entries are rows of a small key/value table; the driver is pure Go.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/alem-hub/attendance-tracker/internal/infrastructure/persistence"
)

// Backend stores entries in the entries table.
type Backend struct {
	db   *sql.DB
	path string
}

var _ persistence.Backend = (*Backend)(nil)

// Open creates or opens the database at path and prepares the schema.
func Open(ctx context.Context, path string) (*Backend, error) {
	if path == "" {
		return nil, errors.New("sqlite: database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	b := &Backend{db: db, path: path}
	if err := b.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to initialize schema: %w", err)
	}
	return b, nil
}

func (b *Backend) initSchema(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS entries (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	)`)
	return err
}

// Path returns the database file path.
func (b *Backend) Path() string {
	return b.path
}

// Name implements persistence.Backend.
func (b *Backend) Name() string { return "sqlite" }

// Read implements persistence.Backend.
func (b *Backend) Read(ctx context.Context, name string) ([]byte, error) {
	var value string
	err := b.db.QueryRowContext(ctx, `SELECT value FROM entries WHERE name = ?`, name).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.ErrEntryNotFound
		}
		return nil, fmt.Errorf("sqlite: failed to read entry %s: %w", name, err)
	}
	return []byte(value), nil
}

// Write implements persistence.Backend.
func (b *Backend) Write(ctx context.Context, name string, data []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO entries (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		name, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: failed to write entry %s: %w", name, err)
	}
	return nil
}

// Close implements persistence.Backend.
func (b *Backend) Close() error {
	return b.db.Close()
}
