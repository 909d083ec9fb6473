package reminder

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteBackend stores the reminder list as a table snapshot. Save
// replaces the table contents inside one transaction.
type SQLiteBackend struct{}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTable(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func createTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS reminders (
			position      INTEGER PRIMARY KEY,
			task          TEXT    NOT NULL,
			due_date_str  TEXT    NOT NULL,
			priority      TEXT    NOT NULL,
			details       TEXT    NOT NULL DEFAULT '',
			is_completed  INTEGER NOT NULL DEFAULT 0,
			creation_date TEXT    NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

func (SQLiteBackend) Load(path string, now time.Time) ([]Record, error) {
	// sql.Open would create a missing file.
	if _, err := os.Stat(path); err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	db, err := openDB(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT task, due_date_str, priority, details, is_completed, creation_date
		FROM reminders ORDER BY position ASC
	`)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: fmt.Errorf("failed to list reminders: %w", err)}
	}
	defer rows.Close()

	return scanRecords(rows, now)
}

// scanRecords reads rows into records, applying the same due-date
// fallback and priority check as Decode.
func scanRecords(rows *sql.Rows, now time.Time) ([]Record, error) {
	var records []Record
	for i := 0; rows.Next(); i++ {
		var task, dueDate, priorityName, details, createdAt string
		var completed bool

		if err := rows.Scan(&task, &dueDate, &priorityName, &details, &completed, &createdAt); err != nil {
			return nil, &SchemaError{Index: i, Reason: fmt.Sprintf("unreadable row: %v", err)}
		}

		priority, ok := ParsePriority(priorityName)
		if !ok {
			return nil, &SchemaError{Index: i, Key: "priority", Reason: "must be High, Medium or Low"}
		}
		if task == "" {
			return nil, &SchemaError{Index: i, Key: "task", Reason: "cannot be empty"}
		}

		r := newRecord(task, dueDate, priority, details, now)
		r.Completed = completed
		if createdAt != "" {
			r.CreatedAt = createdAt
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (SQLiteBackend) Save(path string, records []Record) error {
	db, err := openDB(path)
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	defer db.Close()

	if err := replaceAll(db, records); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func replaceAll(db *sql.DB, records []Record) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM reminders`); err != nil {
		return fmt.Errorf("failed to clear reminders: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO reminders (position, task, due_date_str, priority, details, is_completed, creation_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(i, r.Task, r.DueAt.Format(TimeLayout), r.Priority.String(),
			r.Details, r.Completed, r.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert reminder: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
