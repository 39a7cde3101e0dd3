package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/attendance-tracker/internal/domain/attendance"
	"github.com/alem-hub/attendance-tracker/internal/infrastructure/persistence"
)

func TestBackend_ReadWrite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "attendance.db")

	b, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })

	_, err = b.Read(ctx, "attendanceData")
	assert.ErrorIs(t, err, persistence.ErrEntryNotFound)

	require.NoError(t, b.Write(ctx, "attendanceData", []byte(`[]`)))
	require.NoError(t, b.Write(ctx, "attendanceData", []byte(`[{"id":"a","name":"Maths","attended":1,"total":2}]`)))

	data, err := b.Read(ctx, "attendanceData")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","name":"Maths","attended":1,"total":2}]`, string(data))
}

func TestBackend_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "attendance.db")

	first, err := Open(ctx, path)
	require.NoError(t, err)
	repo := persistence.NewEntryRepository(first, "")
	want := []attendance.Record{{ID: "a", Name: "Maths", Attended: 3, Total: 4}}
	require.NoError(t, repo.Save(ctx, want))
	require.NoError(t, first.Close())

	second, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	got, err := persistence.NewEntryRepository(second, "").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
