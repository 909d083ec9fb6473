package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the canonical timestamp text used for input and on disk.
const TimeLayout = "2006-01-02 15:04"

// DefaultFilename is the implicit load target and initial save target.
const DefaultFilename = "reminders_data.json"

// ID identifies a record independently of its position in the list.
type ID = uuid.UUID

// Priority is ordered High < Medium < Low for sorting.
type Priority int

// Priority levels for reminders.
const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

var priorityNames = [...]string{"High", "Medium", "Low"}

// Priorities lists every level in rank order.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

func (p Priority) String() string {
	if p < PriorityHigh || p > PriorityLow {
		return fmt.Sprintf("Priority(%d)", int(p))
	}
	return priorityNames[p]
}

// Rank is the sort rank: 0 for High, 2 for Low.
func (p Priority) Rank() int {
	return int(p)
}

// ParsePriority accepts the level names case-insensitively.
func ParsePriority(s string) (Priority, bool) {
	for i, name := range priorityNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Priority(i), true
		}
	}
	return 0, false
}

// Record is a single reminder item.
type Record struct {
	ID        ID
	Task      string
	DueAt     time.Time
	Priority  Priority
	Details   string
	Completed bool
	// CreatedAt is kept as the text it was first stored with.
	CreatedAt string
	// Substituted is set when the due-date input could not be parsed and
	// DueAt was replaced with the construction wall-clock time. DueRaw keeps the
	// original input. Neither is persisted.
	Substituted bool
	DueRaw      string

	seq uint64
}

// newRecord builds a record, applying the due-date fallback: text that does
// not parse under TimeLayout yields now as the due time.
func newRecord(task, dueText string, priority Priority, details string, now time.Time) Record {
	r := Record{
		ID:        uuid.New(),
		Task:      task,
		Priority:  priority,
		Details:   details,
		CreatedAt: now.Format(TimeLayout),
	}
	due, err := ParseTime(dueText)
	if err != nil {
		r.DueAt = WallClock(now)
		r.Substituted = true
		r.DueRaw = dueText
	} else {
		r.DueAt = due
	}
	return r
}

// ParseTime parses canonical timestamp text as a naive wall-clock time.
// Due times are held in UTC so no zone rule can shift them.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}

// WallClock returns t's local date and clock reading in the naive
// representation used for due times.
func WallClock(t time.Time) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, mo, d, h, mi, s, t.Nanosecond(), time.UTC)
}

// Overdue reports whether the record is still open and due before now.
func (r Record) Overdue(now time.Time) bool {
	return !r.Completed && r.DueAt.Before(WallClock(now))
}

// ShortID is the first eight hex digits of the ID.
func (r Record) ShortID() string {
	return r.ID.String()[:8]
}

func (r Record) String() string {
	status := "[ ]"
	if r.Completed {
		status = "[X]"
	}
	return fmt.Sprintf("%s %s (Due: %s, Priority: %s)", status, r.Task, r.DueAt.Format(TimeLayout), r.Priority)
}
