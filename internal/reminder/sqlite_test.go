package reminder

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteLoadUnreadableRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edited.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE reminders (
			position INTEGER PRIMARY KEY, task TEXT, due_date_str TEXT, priority TEXT,
			details TEXT, is_completed INTEGER, creation_date TEXT
		)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO reminders VALUES
		(0, 'Fine', '2025-01-01 09:00', 'High', '', 0, '2024-12-01 08:00'),
		(1, NULL, '2025-01-01 09:00', 'High', '', 0, '2024-12-01 08:00')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	records, err := SQLiteBackend{}.Load(path, testNow)
	require.Error(t, err)
	assert.Nil(t, records)
	assert.ErrorIs(t, err, ErrSchema)

	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 1, serr.Index)
}

func TestSQLiteRoundTripKeepsWallClock(t *testing.T) {
	inZone(t, "America/New_York")
	path := filepath.Join(t.TempDir(), "reminders.db")

	s := newTestStore()
	mustCreate(t, s, "Gap", "2025-03-09 02:30", "High")
	require.NoError(t, SQLiteBackend{}.Save(path, s.List()))

	records, err := SQLiteBackend{}.Load(path, testNow)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-03-09 02:30", records[0].DueAt.Format(TimeLayout))
}
