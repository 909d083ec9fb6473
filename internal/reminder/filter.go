package reminder

import (
	"fmt"
	"strings"
	"time"
)

// List filters accepted by Filter. An empty status matches everything.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusOverdue   = "overdue"
)

// Filter returns the records matching status, keeping their order.
func Filter(records []Record, status string, now time.Time) ([]Record, error) {
	status = strings.ToLower(strings.TrimSpace(status))

	var match func(Record) bool
	switch status {
	case "", "all":
		return records, nil
	case StatusPending:
		match = func(r Record) bool { return !r.Completed }
	case StatusCompleted:
		match = func(r Record) bool { return r.Completed }
	case StatusOverdue:
		match = func(r Record) bool { return r.Overdue(now) }
	default:
		return nil, &ValidationError{Field: "status", Value: status,
			Reason: fmt.Sprintf("use %s, %s or %s", StatusPending, StatusCompleted, StatusOverdue)}
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}
