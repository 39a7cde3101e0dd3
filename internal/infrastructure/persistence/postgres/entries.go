package postgres

import (
	"context"
	"fmt"

	"github.com/alem-hub/attendance-tracker/internal/infrastructure/persistence"
)

// Backend stores entries in the attendance_entries table.
type Backend struct {
	conn *Connection
}

var _ persistence.Backend = (*Backend)(nil)

// Open connects, runs pending migrations and returns a ready backend.
func Open(ctx context.Context, databaseURL string, opts PoolOptions) (*Backend, error) {
	conn, err := NewConnectionFromURL(ctx, databaseURL, opts)
	if err != nil {
		return nil, err
	}
	if err := NewMigrator(conn).Migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return NewBackend(conn), nil
}

// NewBackend wraps an already migrated connection.
func NewBackend(conn *Connection) *Backend {
	return &Backend{conn: conn}
}

// Name implements persistence.Backend.
func (b *Backend) Name() string { return "postgres" }

// Read implements persistence.Backend.
func (b *Backend) Read(ctx context.Context, name string) ([]byte, error) {
	var value []byte
	err := b.conn.QueryRow(ctx, `SELECT value::text FROM attendance_entries WHERE name = $1`, name).Scan(&value)
	if err != nil {
		if IsNoRows(err) {
			return nil, persistence.ErrEntryNotFound
		}
		return nil, fmt.Errorf("postgres: failed to read entry %s: %w", name, err)
	}
	return value, nil
}

// Write implements persistence.Backend.
func (b *Backend) Write(ctx context.Context, name string, data []byte) error {
	_, err := b.conn.Exec(ctx, `
		INSERT INTO attendance_entries (name, value, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		name, string(data),
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to write entry %s: %w", name, err)
	}
	return nil
}

// Close implements persistence.Backend.
func (b *Backend) Close() error {
	b.conn.Close()
	return nil
}
