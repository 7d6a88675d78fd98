package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var ErrNoRecord = errors.New("no record")
var ErrAlreadyExists = errors.New("entity already exists")

// ValidationError carries per-field messages; nothing has been persisted
// when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// ConflictError reports that at least one requested assignee already has a
// non-completed overlapping event. The event details come from the first
// conflict found; UserNames aggregates every affected user.
type ConflictError struct {
	EventID    string
	EventTitle string
	StartsAt   time.Time
	EndsAt     *time.Time
	UserNames  []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already booked: %q at %s",
		strings.Join(e.UserNames, ", "), e.EventTitle, e.StartsAt.Format("02/01/2006 15:04"))
}
