package sqlite

// Schema DDL. One row per medium key; value holds the serialized slot.
const (
	createSlots = `CREATE TABLE IF NOT EXISTS slots (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	idxSlotsUpdated = `CREATE INDEX IF NOT EXISTS idx_slots_updated ON slots(updated_at);`
)

// schemaDDL lists all statements run on Attach, in order.
var schemaDDL = []string{
	createSlots,
	idxSlotsUpdated,
}

// Slot statements.
const (
	selectSlot = `SELECT value FROM slots WHERE key = ?`
	upsertSlot = `INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`
	deleteSlot  = `DELETE FROM slots WHERE key = ?`
	deleteSlots = `DELETE FROM slots`
)
