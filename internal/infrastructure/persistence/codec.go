// Package persistence stores the tracker's records as a single named entry
// holding a JSON array, on top of pluggable key/value backends.
package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/alem-hub/attendance-tracker/internal/domain/attendance"
)

// Encode serialises records as a JSON array of {id, name, attended, total}.
// A nil slice encodes as an empty array.
func Encode(records []attendance.Record) ([]byte, error) {
	if records == nil {
		records = []attendance.Record{}
	}
	return json.Marshal(records)
}

// Decode parses an entry written by Encode or by earlier versions of the
// tracker (numeric ids). Every record must satisfy the attendance invariant
// and ids must be unique; otherwise the entry is treated as malformed.
func Decode(data []byte) ([]attendance.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []attendance.Record{}, nil
	}

	var records []attendance.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode entry: %w", err)
	}
	if records == nil {
		// literal null
		return []attendance.Record{}, nil
	}

	seen := make(map[attendance.ID]struct{}, len(records))
	for i, r := range records {
		if err := r.Check(); err != nil {
			return nil, fmt.Errorf("decode entry: record %d: %w", i, err)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("decode entry: duplicate id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	return records, nil
}
