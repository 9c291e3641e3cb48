package reports

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrReportNotFound is returned when a report id is not in the store.
	ErrReportNotFound = errors.New("report not found")

	// ErrDuplicateID is returned when inserting a report whose id is taken.
	ErrDuplicateID = errors.New("duplicate report id")
)

// ValidationError describes why a draft was rejected, keyed by field name.
type ValidationError struct {
	FieldErrors map[string][]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.FieldErrors))
	for field := range e.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e.FieldErrors[field], ", "))
	}
	return "invalid report: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	if e.FieldErrors == nil {
		e.FieldErrors = make(map[string][]string)
	}
	e.FieldErrors[field] = append(e.FieldErrors[field], message)
}

func (e *ValidationError) merge(fieldErrors map[string][]string) {
	for field, messages := range fieldErrors {
		for _, m := range messages {
			e.add(field, m)
		}
	}
}

func (e *ValidationError) empty() bool {
	return len(e.FieldErrors) == 0
}
