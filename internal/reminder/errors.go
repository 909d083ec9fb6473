package reminder

import (
	"errors"
	"fmt"
)

// Error classes. Each typed error below matches one of these with errors.Is.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("reminder not found")
	ErrParse      = errors.New("malformed document")
	ErrSchema     = errors.New("unexpected document shape")
	ErrIO         = errors.New("i/o failure")
)

// ValidationError rejects user input before any mutation happens.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError is returned when an ID no longer names a record.
type NotFoundError struct {
	ID ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("reminder %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ParseError means the document is not valid UTF-8 JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to decode reminders: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// SchemaError means the document is JSON but not a list of reminders.
// Index is -1 for problems with the top level.
type SchemaError struct {
	Index  int
	Key    string
	Reason string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("invalid reminders document: %s", e.Reason)
	case e.Key == "":
		return fmt.Sprintf("invalid reminder at index %d: %s", e.Index, e.Reason)
	default:
		return fmt.Sprintf("invalid reminder at index %d: %q %s", e.Index, e.Key, e.Reason)
	}
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// IOError wraps a failed read or write of a reminders file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }
