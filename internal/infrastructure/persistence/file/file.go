// Package file implements the default persistence backend: one JSON file per
// entry inside a data directory on the local disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/alem-hub/attendance-tracker/internal/infrastructure/persistence"
)

// Entry names map to file names, so they are restricted to a safe alphabet.
var entryNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ErrInvalidEntryName is returned for names that cannot be used as file names.
var ErrInvalidEntryName = errors.New("file: invalid entry name")

// Backend stores entries as <dir>/<name>.json.
type Backend struct {
	dir string
}

var _ persistence.Backend = (*Backend)(nil)

// New creates the data directory if needed and returns a backend rooted there.
func New(dir string) (*Backend, error) {
	if dir == "" {
		return nil, errors.New("file: data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file: failed to create data directory: %w", err)
	}
	return &Backend{dir: dir}, nil
}

// Dir returns the data directory.
func (b *Backend) Dir() string {
	return b.dir
}

// Name implements persistence.Backend.
func (b *Backend) Name() string { return "file" }

// Path returns the file path an entry is stored at.
func (b *Backend) Path(name string) (string, error) {
	if !entryNameRegex.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidEntryName, name)
	}
	return filepath.Join(b.dir, name+".json"), nil
}

// Read implements persistence.Backend.
func (b *Backend) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := b.Path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, persistence.ErrEntryNotFound
		}
		return nil, fmt.Errorf("file: failed to read %s: %w", path, err)
	}
	return data, nil
}

// Write implements persistence.Backend. The entry is written to a temporary
// file in the same directory and renamed over the old one, so readers never
// observe a half-written entry.
func (b *Backend) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := b.Path(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(b.dir, "."+name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("file: failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("file: failed to write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("file: failed to sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file: failed to close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("file: failed to replace %s: %w", path, err)
	}
	return nil
}

// Close implements persistence.Backend.
func (b *Backend) Close() error { return nil }
