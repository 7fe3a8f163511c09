package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an activity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is the parent of roster state errors.
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput is returned when the request or seed data is invalid.
	ErrInvalidInput = errors.New("invalid input")

	ErrAlreadySignedUp = fmt.Errorf("%w: student is already signed up", ErrConflict)
	ErrNotRegistered   = fmt.Errorf("%w: student is not registered", ErrConflict)
	ErrActivityFull    = fmt.Errorf("%w: activity is full", ErrConflict)
)
