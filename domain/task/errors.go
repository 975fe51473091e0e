package task

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a task does not exist for the requesting user.
var ErrNotFound = errors.New("task not found")

// ValidationError is a user input problem. Reason is safe to show to the user.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Invalid returns a ValidationError with the given reason.
func Invalid(reason string) error {
	return &ValidationError{Reason: reason}
}

// NotFound returns the ValidationError used for an unknown task id.
func NotFound(id int64) error {
	return &ValidationError{
		Reason: fmt.Sprintf("Task %d not found.", id),
		Err:    ErrNotFound,
	}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
