package instance

import "errors"

var (
	// ErrInvalidInstance is returned when required fields are missing or out of range.
	ErrInvalidInstance = errors.New("instance.invalid_instance")

	// ErrNotFound is returned when no instance exists for the given id.
	ErrNotFound = errors.New("instance.not_found")
)
