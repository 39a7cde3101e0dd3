package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/attendance-tracker/internal/application/tracker"
	"github.com/alem-hub/attendance-tracker/internal/domain/attendance"
	"github.com/alem-hub/attendance-tracker/internal/domain/shared"
	"github.com/alem-hub/attendance-tracker/internal/infrastructure/persistence"
	"github.com/alem-hub/attendance-tracker/internal/infrastructure/persistence/file"
)

// harness runs each command against a fresh store over the same backend,
// the way separate invocations of the binary would.
type harness struct {
	t       *testing.T
	backend persistence.Backend
	nextID  int
	opts    []tracker.Option
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend, err := file.New(t.TempDir())
	require.NoError(t, err)
	return &harness{t: t, backend: backend}
}

func (h *harness) run(stdin string, args ...string) (string, string, error) {
	h.t.Helper()
	opts := append([]tracker.Option{
		tracker.WithWriteAttempts(1),
		tracker.WithIDGenerator(func() attendance.ID {
			h.nextID++
			return attendance.ID(fmt.Sprintf("s%d", h.nextID))
		}),
	}, h.opts...)
	store := tracker.New(persistence.NewEntryRepository(h.backend, ""), opts...)

	var out, errOut bytes.Buffer
	root := NewRootCommand(&App{Store: store})
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)

	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func (h *harness) records() []attendance.Record {
	h.t.Helper()
	recs, err := persistence.NewEntryRepository(h.backend, "").Load(context.Background())
	require.NoError(h.t, err)
	return recs
}

func TestCLI_ListEmpty(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No subjects yet")
}

func TestCLI_AddAndList(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("", "add", "Linear", "Algebra", "--attended", "3", "--total", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Linear Algebra")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "Can Skip 0 Classes")
	assert.Contains(t, out, "Requirement : 75%")

	_, _, err = h.run("", "add", "Physics", "--attended", "2", "--total", "4")
	require.NoError(t, err)

	out, _, err = h.run("", "list")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Linear Algebra"), strings.Index(out, "Physics"))
	assert.Contains(t, out, "Must attend 4 Classes")

	assert.Equal(t, []attendance.Record{
		{ID: "s1", Name: "Linear Algebra", Attended: 3, Total: 4},
		{ID: "s2", Name: "Physics", Attended: 2, Total: 4},
	}, h.records())
}

func TestCLI_AddInvalid(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("", "add", "Maths", "--attended", "5", "--total", "4")
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrValueOutOfRange)
	assert.Empty(t, h.records())
}

func TestCLI_Counters(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run("", "add", "Maths", "--attended", "3", "--total", "4")
	require.NoError(t, err)

	steps := []struct {
		cmd             string
		attended, total int
	}{
		{"present", 4, 5},
		{"absent", 4, 6},
		{"undo-absent", 4, 5},
		{"undo-present", 3, 4},
	}
	for _, step := range steps {
		_, _, err := h.run("", step.cmd, "s1")
		require.NoError(t, err, step.cmd)
		recs := h.records()
		require.Len(t, recs, 1)
		assert.Equal(t, step.attended, recs[0].Attended, step.cmd)
		assert.Equal(t, step.total, recs[0].Total, step.cmd)
	}

	_, _, err = h.run("", "present", "nope")
	assert.True(t, shared.IsNotFound(err))
}

func TestCLI_Edit(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run("", "add", "Maths", "--attended", "3", "--total", "4")
	require.NoError(t, err)

	_, _, err = h.run("", "edit", "s1", "--total", "10")
	require.NoError(t, err)

	assert.Equal(t, []attendance.Record{{ID: "s1", Name: "Maths", Attended: 3, Total: 10}}, h.records())
}

func TestCLI_DeleteConfirmation(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run("", "add", "Maths")
	require.NoError(t, err)

	out, _, err := h.run("n\n", "delete", "s1")
	require.NoError(t, err)
	assert.Contains(t, out, `Are you sure you want to delete "Maths"?`)
	assert.Contains(t, out, "Cancelled.")
	assert.Len(t, h.records(), 1)

	out, _, err = h.run("yes\n", "delete", "s1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted Maths.")
	assert.Empty(t, h.records())
}

func TestCLI_DeleteYesFlag(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run("", "add", "Maths")
	require.NoError(t, err)

	_, _, err = h.run("", "delete", "--yes", "s1")
	require.NoError(t, err)
	assert.Empty(t, h.records())

	_, _, err = h.run("", "delete", "--yes", "s1")
	assert.True(t, shared.IsNotFound(err))
}

func TestCLI_Stats(t *testing.T) {
	h := newHarness(t)
	for _, args := range [][]string{
		{"add", "A", "--attended", "3", "--total", "4"},
		{"add", "B", "--attended", "2", "--total", "4"},
		{"add", "C"},
	} {
		_, _, err := h.run("", args...)
		require.NoError(t, err)
	}

	out, _, err := h.run("", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "3 Subjects")
	assert.Contains(t, out, "63%")
}

// readOnly rejects every write.
type readOnly struct {
	persistence.Backend
}

func (readOnly) Write(context.Context, string, []byte) error {
	return errors.New("read-only file system")
}

func TestCLI_WriteFailureIsAWarning(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run("", "add", "Maths", "--attended", "3", "--total", "4")
	require.NoError(t, err)
	h.backend = readOnly{h.backend}

	out, errOut, err := h.run("", "present", "s1")
	require.NoError(t, err)
	assert.Contains(t, errOut, "may not survive a restart")
	assert.Contains(t, out, "80%")
	assert.Equal(t, 4, h.records()[0].Total)

	h.opts = []tracker.Option{tracker.WithRollbackOnWriteFailure()}
	out, errOut, err = h.run("", "present", "s1")
	require.NoError(t, err)
	assert.Contains(t, errOut, "discarded")
	assert.Empty(t, out)
}
