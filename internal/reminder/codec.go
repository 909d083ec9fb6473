package reminder

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
	"unicode/utf8"
)

// document is one element of the reminders file.
type document struct {
	Task         string `json:"task"`
	DueDateStr   string `json:"due_date_str"`
	Priority     string `json:"priority"`
	Details      string `json:"details"`
	IsCompleted  bool   `json:"is_completed"`
	CreationDate string `json:"creation_date"`
}

// Defaults for keys that may be missing from a stored reminder.
const (
	defaultDetails   = ""
	defaultCompleted = false
)

// Encode renders records as the reminders file, in the order given.
func Encode(records []Record) ([]byte, error) {
	docs := make([]document, len(records))
	for i, r := range records {
		docs[i] = document{
			Task:         r.Task,
			DueDateStr:   r.DueAt.Format(TimeLayout),
			Priority:     r.Priority.String(),
			Details:      r.Details,
			IsCompleted:  r.Completed,
			CreationDate: r.CreatedAt,
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(docs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses a reminders file. now stamps records that lack a creation
// date and replaces due dates that do not parse. The whole decode fails on
// invalid JSON or a malformed element; an unparsable due date does not.
func Decode(data []byte, now time.Time) ([]Record, error) {
	// encoding/json would replace bad bytes with U+FFFD and a later save
	// would rewrite them.
	if !utf8.Valid(data) {
		return nil, &ParseError{Err: errors.New("invalid UTF-8")}
	}
	if !json.Valid(data) {
		var v any
		return nil, &ParseError{Err: json.Unmarshal(data, &v)}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, &SchemaError{Index: -1, Reason: "top level must be an array"}
	}
	// "null" unmarshals into a nil slice without error.
	if elems == nil {
		return nil, &SchemaError{Index: -1, Reason: "top level must be an array"}
	}

	records := make([]Record, 0, len(elems))
	for i, raw := range elems {
		r, err := decodeRecord(i, raw, now)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func decodeRecord(i int, raw json.RawMessage, now time.Time) (Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Record{}, &SchemaError{Index: i, Reason: "must be an object"}
	}

	var task string
	if err := requiredString(fields, i, "task", &task); err != nil {
		return Record{}, err
	}
	if task == "" {
		return Record{}, &SchemaError{Index: i, Key: "task", Reason: "cannot be empty"}
	}

	var priorityName string
	if err := requiredString(fields, i, "priority", &priorityName); err != nil {
		return Record{}, err
	}
	priority, ok := ParsePriority(priorityName)
	if !ok {
		return Record{}, &SchemaError{Index: i, Key: "priority", Reason: "must be High, Medium or Low"}
	}

	dueRaw, ok := fields["due_date_str"]
	if !ok {
		return Record{}, &SchemaError{Index: i, Key: "due_date_str", Reason: "is required"}
	}
	// A non-string due date takes the same fallback as an unparsable one.
	dueText := string(dueRaw)
	var s string
	if json.Unmarshal(dueRaw, &s) == nil {
		dueText = s
	}

	details := defaultDetails
	if err := optional(fields, i, "details", &details); err != nil {
		return Record{}, err
	}
	completed := defaultCompleted
	if err := optional(fields, i, "is_completed", &completed); err != nil {
		return Record{}, err
	}
	var created string
	if err := optional(fields, i, "creation_date", &created); err != nil {
		return Record{}, err
	}
	if created == "" {
		created = now.Format(TimeLayout)
	}

	r := newRecord(task, dueText, priority, details, now)
	r.Completed = completed
	r.CreatedAt = created
	return r, nil
}

func requiredString(fields map[string]json.RawMessage, i int, key string, dst *string) error {
	raw, ok := fields[key]
	if !ok {
		return &SchemaError{Index: i, Key: key, Reason: "is required"}
	}
	if isNull(raw) || json.Unmarshal(raw, dst) != nil {
		return &SchemaError{Index: i, Key: key, Reason: "must be a string"}
	}
	return nil
}

// optional decodes key into dst when present and non-null; dst keeps its
// default otherwise.
func optional[T any](fields map[string]json.RawMessage, i int, key string, dst *T) error {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return &SchemaError{Index: i, Key: key, Reason: "has the wrong type"}
	}
	*dst = v
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
