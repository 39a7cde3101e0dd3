package attendance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/attendance-tracker/internal/domain/shared"
)

func TestNewRecord(t *testing.T) {
	r, err := NewRecord("abc", "  Signals  ", 2, 5)
	require.NoError(t, err)

	assert.Equal(t, ID("abc"), r.ID)
	assert.Equal(t, "Signals", r.Name)
	assert.Equal(t, 3, r.Missed())
}

func TestNewRecord_Validation(t *testing.T) {
	tests := []struct {
		name     string
		id       ID
		subject  string
		attended int
		total    int
		kind     error
	}{
		{"missing id", "", "Maths", 0, 0, shared.ErrInvalidID},
		{"empty name", "x", "", 0, 0, shared.ErrEmptyValue},
		{"blank name", "x", "   ", 0, 0, shared.ErrEmptyValue},
		{"negative attended", "x", "Maths", -1, 3, shared.ErrNegativeValue},
		{"negative total", "x", "Maths", 0, -1, shared.ErrNegativeValue},
		{"attended over total", "x", "Maths", 5, 4, shared.ErrValueOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRecord(tt.id, tt.subject, tt.attended, tt.total)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.True(t, shared.IsValidation(err))
		})
	}
}

func TestRecord_UpdateKeepsStateOnError(t *testing.T) {
	r := rec(3, 4)

	err := r.Update("Physics", 6, 5)
	assert.ErrorIs(t, err, shared.ErrValueOutOfRange)
	assert.Equal(t, rec(3, 4), r)

	require.NoError(t, r.Update("Physics", 1, 5))
	assert.Equal(t, Record{ID: "r1", Name: "Physics", Attended: 1, Total: 5}, r)
}

func TestRecord_Transitions(t *testing.T) {
	t.Run("present then undo restores counters", func(t *testing.T) {
		r := rec(2, 7)
		assert.True(t, r.MarkPresent())
		assert.Equal(t, 3, r.Attended)
		assert.Equal(t, 8, r.Total)
		assert.True(t, r.UndoPresent())
		assert.Equal(t, rec(2, 7), r)
	})

	t.Run("absent raises total only", func(t *testing.T) {
		r := rec(3, 3)
		assert.True(t, r.MarkAbsent())
		assert.Equal(t, rec(3, 4), r)
		assert.Equal(t, 75, PercentageOf(r))
	})

	t.Run("undo absent without misses is a no-op", func(t *testing.T) {
		r := rec(3, 3)
		assert.False(t, r.UndoAbsent())
		assert.Equal(t, rec(3, 3), r)
	})

	t.Run("undo present on zero is a no-op", func(t *testing.T) {
		r := rec(0, 2)
		assert.False(t, r.UndoPresent())
		assert.Equal(t, rec(0, 2), r)
	})

	t.Run("undo absent removes a miss", func(t *testing.T) {
		r := rec(1, 3)
		assert.True(t, r.UndoAbsent())
		assert.Equal(t, rec(1, 2), r)
	})
}

func TestID_JSON(t *testing.T) {
	var records []Record
	data := `[{"id":1700000000000,"name":"Maths","attended":3,"total":4},{"id":"b7","name":"Art","attended":0,"total":0}]`
	require.NoError(t, json.Unmarshal([]byte(data), &records))

	require.Len(t, records, 2)
	assert.Equal(t, ID("1700000000000"), records[0].ID)
	assert.Equal(t, ID("b7"), records[1].ID)

	out, err := json.Marshal(records[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1700000000000","name":"Maths","attended":3,"total":4}`, string(out))

	var bad Record
	assert.Error(t, json.Unmarshal([]byte(`{"id":true}`), &bad))
}
