package persistence

import (
	"context"
	"errors"

	"github.com/alem-hub/attendance-tracker/internal/domain/attendance"
	"github.com/alem-hub/attendance-tracker/internal/domain/shared"
)

// DefaultEntryName is the storage key used since the first version of the tracker.
const DefaultEntryName = "attendanceData"

// ErrEntryNotFound is returned by a Backend when the entry does not exist.
var ErrEntryNotFound = errors.New("persistence: entry not found")

// Backend is a durable key/value store holding opaque entries.
type Backend interface {
	// Name identifies the backend in logs, e.g. "file" or "redis".
	Name() string

	// Read returns the entry bytes, or ErrEntryNotFound.
	Read(ctx context.Context, name string) ([]byte, error)

	// Write replaces the entry with data.
	Write(ctx context.Context, name string, data []byte) error

	// Close releases backend resources.
	Close() error
}

// EntryRepository implements attendance.Repository on a single named entry.
type EntryRepository struct {
	backend Backend
	name    string
}

var _ attendance.Repository = (*EntryRepository)(nil)

// NewEntryRepository creates a repository storing records under name.
// An empty name falls back to DefaultEntryName.
func NewEntryRepository(backend Backend, name string) *EntryRepository {
	if name == "" {
		name = DefaultEntryName
	}
	return &EntryRepository{backend: backend, name: name}
}

// EntryName returns the key the records are stored under.
func (r *EntryRepository) EntryName() string {
	return r.name
}

// Backend returns the underlying backend.
func (r *EntryRepository) Backend() Backend {
	return r.backend
}

// Load reads and decodes the entry. An absent entry yields no records.
func (r *EntryRepository) Load(ctx context.Context) ([]attendance.Record, error) {
	data, err := r.backend.Read(ctx, r.name)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return []attendance.Record{}, nil
		}
		return nil, err
	}

	records, err := Decode(data)
	if err != nil {
		return nil, shared.WrapError("persistence", "Load", shared.ErrPersistenceRead, "entry "+r.name+" is malformed", err)
	}
	return records, nil
}

// Save encodes records and replaces the entry.
func (r *EntryRepository) Save(ctx context.Context, records []attendance.Record) error {
	data, err := Encode(records)
	if err != nil {
		return shared.WrapError("persistence", "Save", shared.ErrPersistenceWrite, "failed to encode records", err)
	}
	if err := r.backend.Write(ctx, r.name, data); err != nil {
		return shared.WrapError("persistence", "Save", shared.ErrPersistenceWrite, "failed to write entry "+r.name+" to "+r.backend.Name(), err)
	}
	return nil
}
