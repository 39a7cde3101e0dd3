package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/attendance-tracker/internal/domain/attendance"
	"github.com/alem-hub/attendance-tracker/internal/domain/shared"
	"github.com/alem-hub/attendance-tracker/internal/infrastructure/persistence"
)

func newBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	return b
}

func TestBackend_ReadMissing(t *testing.T) {
	b := newBackend(t)

	_, err := b.Read(context.Background(), "attendanceData")
	assert.ErrorIs(t, err, persistence.ErrEntryNotFound)
}

func TestBackend_WriteReplacesEntry(t *testing.T) {
	ctx := context.Background()
	b := newBackend(t)

	require.NoError(t, b.Write(ctx, "attendanceData", []byte(`[1]`)))
	require.NoError(t, b.Write(ctx, "attendanceData", []byte(`[2]`)))

	data, err := b.Read(ctx, "attendanceData")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(data))

	entries, err := os.ReadDir(b.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	assert.Equal(t, "attendanceData.json", entries[0].Name())
}

func TestBackend_RejectsUnsafeNames(t *testing.T) {
	b := newBackend(t)

	for _, name := range []string{"", "../escape", "a/b", ".hidden"} {
		err := b.Write(context.Background(), name, []byte(`[]`))
		assert.ErrorIs(t, err, ErrInvalidEntryName, "name %q", name)
	}
}

func TestEntryRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewEntryRepository(newBackend(t), "")

	want := []attendance.Record{
		{ID: "1700000000000", Name: "Maths", Attended: 3, Total: 4},
		{ID: "2f1c", Name: "Basic Electronics", Attended: 0, Total: 0},
		{ID: "9a0e", Name: "Art", Attended: 8, Total: 10},
	}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEntryRepository_MalformedFile(t *testing.T) {
	ctx := context.Background()
	b := newBackend(t)
	path, err := b.Path(persistence.DefaultEntryName)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err = persistence.NewEntryRepository(b, "").Load(ctx)
	assert.True(t, shared.IsPersistenceRead(err))
}
