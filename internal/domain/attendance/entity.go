// Package attendance contains the domain model of a tracked subject and the
// accounting rules over its class counters. No external dependencies.
package attendance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alem-hub/attendance-tracker/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// ID is the opaque identifier of a record. It is assigned once at creation.
type ID string

// String returns the string representation of the ID.
func (id ID) String() string {
	return string(id)
}

// IsValid reports whether the ID is non-empty.
func (id ID) IsValid() bool {
	return strings.TrimSpace(string(id)) != ""
}

// MarshalJSON always writes the ID as a JSON string.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts both JSON strings and JSON numbers. Entries written
// by earlier versions of the tracker used millisecond timestamps as ids.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: RECORD
// ══════════════════════════════════════════════════════════════════════════════

// Record is one tracked subject with cumulative class counters.
// Invariant: 0 <= Attended <= Total.
type Record struct {
	// ID - immutable identifier, unique within a store.
	ID ID `json:"id"`

	// Name - display name of the subject.
	Name string `json:"name"`

	// Attended - classes the user was present for.
	Attended int `json:"attended"`

	// Total - classes held so far.
	Total int `json:"total"`
}

// NewRecord creates a record after validating the name and counters.
func NewRecord(id ID, name string, attended, total int) (*Record, error) {
	if !id.IsValid() {
		return nil, shared.NewDomainError("attendance", "Create", shared.ErrInvalidID, "record id is required")
	}

	name = strings.TrimSpace(name)
	if err := Validate(name, attended, total); err != nil {
		return nil, err
	}

	return &Record{
		ID:       id,
		Name:     name,
		Attended: attended,
		Total:    total,
	}, nil
}

// Validate checks a name and counter pair against the record invariant.
func Validate(name string, attended, total int) error {
	if strings.TrimSpace(name) == "" {
		return shared.ErrEmptySubjectName
	}
	if attended < 0 || total < 0 {
		return shared.ErrNegativeCount
	}
	if attended > total {
		return shared.ErrAttendedOverTotal
	}
	return nil
}

// Update replaces name and counters, keeping the ID.
// The record is left unchanged when validation fails.
func (r *Record) Update(name string, attended, total int) error {
	name = strings.TrimSpace(name)
	if err := Validate(name, attended, total); err != nil {
		return err
	}
	r.Name = name
	r.Attended = attended
	r.Total = total
	return nil
}

// Missed returns the number of classes not attended.
func (r Record) Missed() int {
	return r.Total - r.Attended
}

// Check reports whether the record satisfies the invariant.
func (r Record) Check() error {
	if !r.ID.IsValid() {
		return shared.NewDomainError("attendance", "Validate", shared.ErrInvalidID, "record id is required")
	}
	return Validate(r.Name, r.Attended, r.Total)
}

// ══════════════════════════════════════════════════════════════════════════════
// COUNTER TRANSITIONS
// Each method reports whether the record changed. Guarded transitions that
// would drive a counter negative are silently ignored.
// ══════════════════════════════════════════════════════════════════════════════

// MarkPresent records an attended class.
func (r *Record) MarkPresent() bool {
	r.Attended++
	r.Total++
	return true
}

// MarkAbsent records a missed class.
func (r *Record) MarkAbsent() bool {
	r.Total++
	return true
}

// UndoPresent removes one attended class.
func (r *Record) UndoPresent() bool {
	if r.Attended <= 0 || r.Total <= 0 {
		return false
	}
	r.Attended--
	r.Total--
	return true
}

// UndoAbsent removes one missed class.
func (r *Record) UndoAbsent() bool {
	if r.Missed() <= 0 {
		return false
	}
	r.Total--
	return true
}
