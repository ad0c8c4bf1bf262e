package form

import (
	"errors"
	"strings"

	"github.com/goliatone/go-plantillas/pkg/validation"
)

var (
	// ErrSubmitted is returned by Set and Submit once the session submitted.
	ErrSubmitted = errors.New("form: session already submitted")
	// ErrSaving is returned by Submit while the save callback runs.
	ErrSaving = errors.New("form: save in progress")
)

// ValidationError carries the messages that blocked a submission.
type ValidationError struct {
	Messages []string
	Issues   []validation.Issue
}

func (e *ValidationError) Error() string {
	return "form: validation failed: " + strings.Join(e.Messages, "; ")
}

// FieldErrors groups the issues by field for inline display.
func (e *ValidationError) FieldErrors() map[string][]string {
	return validation.FieldErrors(e.Issues)
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
