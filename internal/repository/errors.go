package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrCourseNotFound is returned when no course matches a tutor and course id.
	ErrCourseNotFound = errors.New("course not found")
	// ErrConcurrencyFault signals a broken store invariant, such as two
	// courses of one tutor ending up with the same id.
	ErrConcurrencyFault = errors.New("concurrency fault")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
