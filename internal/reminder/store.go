package reminder

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Store is the in-memory reminder list. It keeps records in canonical
// order and re-sorts after every mutation. Store is not safe for concurrent
// use.
type Store struct {
	records []*Record
	byID    map[ID]*Record
	nextSeq uint64
	now     func() time.Time
}

// NewStore returns an empty store that stamps records with the wall clock.
func NewStore() *Store {
	return &Store{
		byID: make(map[ID]*Record),
		now:  time.Now,
	}
}

// Create validates the input and inserts a new pending reminder.
func (s *Store) Create(task, dueText, priority, details string) (Record, error) {
	in, err := validate(task, dueText, priority, details)
	if err != nil {
		return Record{}, err
	}

	r := newRecord(in.task, in.dueText, in.priority, in.details, s.now())
	s.insert(&r)
	s.sort()
	return r, nil
}

// Update replaces the editable fields of an existing reminder. The ID and
// creation date are kept.
func (s *Store) Update(id ID, task, dueText, priority, details string) (Record, error) {
	r, ok := s.byID[id]
	if !ok {
		return Record{}, &NotFoundError{ID: id}
	}

	in, err := validate(task, dueText, priority, details)
	if err != nil {
		return Record{}, err
	}

	r.Task = in.task
	r.DueAt = in.due
	r.Priority = in.priority
	r.Details = in.details
	r.Substituted = false
	r.DueRaw = ""
	s.sort()
	return *r, nil
}

// ToggleCompleted flips the completion flag.
func (s *Store) ToggleCompleted(id ID) (Record, error) {
	r, ok := s.byID[id]
	if !ok {
		return Record{}, &NotFoundError{ID: id}
	}

	r.Completed = !r.Completed
	s.sort()
	return *r, nil
}

// Delete removes a reminder.
func (s *Store) Delete(id ID) error {
	if _, ok := s.byID[id]; !ok {
		return &NotFoundError{ID: id}
	}

	delete(s.byID, id)
	s.records = slices.DeleteFunc(s.records, func(r *Record) bool {
		return r.ID == id
	})
	s.sort()
	return nil
}

// Clear removes every reminder.
func (s *Store) Clear() {
	s.records = nil
	s.byID = make(map[ID]*Record)
}

// Replace swaps the whole list, e.g. after loading a file. Records keep the
// relative order they are given for equal sort keys.
func (s *Store) Replace(records []Record) {
	s.Clear()
	for i := range records {
		r := records[i]
		s.insert(&r)
	}
	s.sort()
}

// List returns a copy of the reminders in canonical order.
func (s *Store) List() []Record {
	out := make([]Record, len(s.records))
	for i, r := range s.records {
		out[i] = *r
	}
	return out
}

// Get returns a single reminder by ID.
func (s *Store) Get(id ID) (Record, error) {
	r, ok := s.byID[id]
	if !ok {
		return Record{}, &NotFoundError{ID: id}
	}
	return *r, nil
}

// Resolve finds the reminder whose ID starts with prefix. The prefix must
// match exactly one reminder.
func (s *Store) Resolve(prefix string) (Record, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return Record{}, &ValidationError{Field: "id", Reason: "cannot be empty"}
	}

	var found *Record
	for _, r := range s.records {
		if !strings.HasPrefix(r.ID.String(), prefix) {
			continue
		}
		if found != nil {
			return Record{}, &ValidationError{Field: "id", Value: prefix, Reason: "matches more than one reminder"}
		}
		found = r
	}
	if found == nil {
		return Record{}, &ValidationError{Field: "id", Value: prefix, Reason: "matches no reminder"}
	}
	return *found, nil
}

// Len returns the number of reminders.
func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) insert(r *Record) {
	r.seq = s.nextSeq
	s.nextSeq++
	s.records = append(s.records, r)
	s.byID[r.ID] = r
}

// sort orders by completion (open first), then due time, then priority
// rank. Insertion sequence breaks remaining ties.
func (s *Store) sort() {
	slices.SortFunc(s.records, compareRecords)
}

func compareRecords(a, b *Record) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	if c := a.DueAt.Compare(b.DueAt); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

type input struct {
	task     string
	dueText  string
	due      time.Time
	priority Priority
	details  string
}

// validate applies the input checks shared by Create and Update. An empty
// priority means Medium.
func validate(task, dueText, priority, details string) (input, error) {
	in := input{
		task:     strings.TrimSpace(task),
		dueText:  strings.TrimSpace(dueText),
		priority: PriorityMedium,
		details:  strings.TrimSpace(details),
	}

	if in.task == "" {
		return input{}, &ValidationError{Field: "task", Reason: "cannot be empty"}
	}
	if in.dueText == "" {
		return input{}, &ValidationError{Field: "due", Reason: "cannot be empty"}
	}
	due, err := ParseTime(in.dueText)
	if err != nil {
		return input{}, &ValidationError{Field: "due", Value: in.dueText, Reason: "must use format YYYY-MM-DD HH:MM"}
	}
	in.due = due

	if strings.TrimSpace(priority) != "" {
		p, ok := ParsePriority(priority)
		if !ok {
			return input{}, &ValidationError{Field: "priority", Value: priority, Reason: "must be High, Medium or Low"}
		}
		in.priority = p
	}

	return in, nil
}
