package postgres

// ══════════════════════════════════════════════════════════════════════════════
// EMBEDDED MIGRATIONS
// ══════════════════════════════════════════════════════════════════════════════

// GetMigrations returns all embedded migrations in version order.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_attendance_entries",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE ATTENDANCE ENTRIES
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- One row per named entry; value holds the JSON array of records.
CREATE TABLE IF NOT EXISTS attendance_entries (
    name VARCHAR(128) PRIMARY KEY,
    value JSONB NOT NULL DEFAULT '[]'::jsonb,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT attendance_entries_value_is_array CHECK (jsonb_typeof(value) = 'array')
);
`

const migration001Down = `
DROP TABLE IF EXISTS attendance_entries;
`
