// Package memory implements an in-process persistence backend. Entries live
// only as long as the process; it backs tests and the "memory" storage mode.
package memory

import (
	"context"
	"sync"

	"github.com/alem-hub/attendance-tracker/internal/infrastructure/persistence"
)

// Backend keeps entries in a map.
type Backend struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

var _ persistence.Backend = (*Backend)(nil)

// New creates an empty in-memory backend.
func New() *Backend {
	return &Backend{entries: make(map[string][]byte)}
}

// Name implements persistence.Backend.
func (b *Backend) Name() string { return "memory" }

// Read implements persistence.Backend.
func (b *Backend) Read(_ context.Context, name string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.entries[name]
	if !ok {
		return nil, persistence.ErrEntryNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write implements persistence.Backend.
func (b *Backend) Write(_ context.Context, name string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	b.entries[name] = stored
	return nil
}

// Close implements persistence.Backend.
func (b *Backend) Close() error { return nil }
