package resource

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnresolvableResource indicates the route segment maps to no registered resource.
	ErrUnresolvableResource = errors.New("unresolvable resource")
	// ErrNotFound indicates a lookup by primary key or first-match filter found nothing.
	ErrNotFound = errors.New("record not found")
	// ErrMissingParameter indicates the request body lacks the resource nesting key.
	ErrMissingParameter = errors.New("param is missing or the value is empty")
	// ErrUnknownFilter indicates a filter key without a registered predicate.
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrInvalidID indicates a non-integer primary key in the route.
	ErrInvalidID = errors.New("invalid ID")
	// ErrMalformedBody indicates a request body that is not a JSON object.
	ErrMalformedBody = errors.New("malformed request body")
	// ErrInvalidQuery indicates a query string that cannot be decoded.
	ErrInvalidQuery = errors.New("invalid query string")
)

// ValidationError carries per-field messages for a record that failed its constraints.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add appends a message for field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty reports whether no messages were recorded.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// Merge copies every message of other into e.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, messages := range other.Fields {
		for _, msg := range messages {
			e.Add(field, msg)
		}
	}
}

func (e *ValidationError) Error() string {
	if e.Empty() {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", field, strings.Join(e.Fields[field], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidation unwraps err into a *ValidationError when it carries one.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
