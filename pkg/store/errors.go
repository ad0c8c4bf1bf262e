package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("store: record not found")
	// ErrInvalidTransition is returned when a solicitud cannot move to the
	// requested status.
	ErrInvalidTransition = errors.New("store: invalid status transition")
	// ErrInvalidInput is returned for records missing required attributes.
	ErrInvalidInput = errors.New("store: invalid input")
)

func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	default:
		return fmt.Errorf("store: %s: %w", op, err)
	}
}
