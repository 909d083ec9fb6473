package reminder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Backend reads and writes a whole reminder list at a path.
type Backend interface {
	Load(path string, now time.Time) ([]Record, error)
	Save(path string, records []Record) error
}

// Backend names accepted by BackendFor.
const (
	BackendAuto   = "auto"
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// BackendFor picks a backend by name. "auto" chooses SQLite for .db,
// .sqlite and .sqlite3 paths and JSON otherwise.
func BackendFor(name, path string) (Backend, error) {
	switch name {
	case BackendJSON:
		return JSONBackend{}, nil
	case BackendSQLite:
		return SQLiteBackend{}, nil
	case BackendAuto, "":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".db", ".sqlite", ".sqlite3":
			return SQLiteBackend{}, nil
		}
		return JSONBackend{}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s (supported: %s, %s, %s)",
			name, BackendAuto, BackendJSON, BackendSQLite)
	}
}

// JSONBackend stores reminders in the JSON document format.
type JSONBackend struct{}

func (JSONBackend) Load(path string, now time.Time) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return Decode(data, now)
}

func (JSONBackend) Save(path string, records []Record) error {
	data, err := Encode(records)
	if err != nil {
		return fmt.Errorf("failed to encode reminders: %w", err)
	}
	return writeFileAtomic(path, data)
}

// writeFileAtomic writes to a temporary file next to path and renames it
// into place, so a failed write leaves the old file intact.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
