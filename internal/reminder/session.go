package reminder

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"
)

// Session ties a Store to the file it was loaded from and will be saved
// to.
type Session struct {
	store       *Store
	path        string
	defaultPath string
	backend     string
	now         func() time.Time
}

// NewSession returns a session over store whose initial path is
// defaultPath. backend is one of BackendAuto, BackendJSON, BackendSQLite.
func NewSession(store *Store, defaultPath, backend string) (*Session, error) {
	if defaultPath == "" {
		defaultPath = DefaultFilename
	}
	if _, err := BackendFor(backend, defaultPath); err != nil {
		return nil, err
	}

	return &Session{
		store:       store,
		path:        defaultPath,
		defaultPath: defaultPath,
		backend:     backend,
		now:         time.Now,
	}, nil
}

// Store returns the underlying reminder list.
func (s *Session) Store() *Store {
	return s.store
}

// Path returns the current save target.
func (s *Session) Path() string {
	return s.path
}

// LoadDefault loads the default file if it exists. A missing file leaves
// the list empty and is not an error.
func (s *Session) LoadDefault() error {
	err := s.Open(s.defaultPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("[reminder] No reminder file at %s, starting fresh", s.defaultPath)
		return nil
	}
	return err
}

// Open replaces the list with the contents of path and makes path the save
// target. On any error the list and path are left unchanged.
func (s *Session) Open(path string) error {
	b, err := BackendFor(s.backend, path)
	if err != nil {
		return err
	}

	records, err := b.Load(path, s.now())
	if err != nil {
		return err
	}

	for _, r := range records {
		if r.Substituted {
			log.Printf("[reminder] Could not parse due date %q for %q, using %s",
				r.DueRaw, r.Task, r.DueAt.Format(TimeLayout))
		}
	}

	s.store.Replace(records)
	s.path = path
	log.Printf("[reminder] Loaded %d reminders from %s", len(records), path)
	return nil
}

// Save writes the list to the current path.
func (s *Session) Save() error {
	return s.SaveAs(s.path)
}

// SaveAs writes the list to path and, on success, makes it the save
// target.
func (s *Session) SaveAs(path string) error {
	if path == "" {
		return &IOError{Op: "write", Path: path, Err: fmt.Errorf("no filename specified")}
	}

	b, err := BackendFor(s.backend, path)
	if err != nil {
		return err
	}

	if err := b.Save(path, s.store.List()); err != nil {
		return err
	}

	s.path = path
	log.Printf("[reminder] Saved %d reminders to %s", s.store.Len(), path)
	return nil
}

// New clears the list and resets the save target to the default path.
func (s *Session) New() {
	s.store.Clear()
	s.path = s.defaultPath
}
