package platform

import "errors"

var (
	// ErrNotFound is returned when a referenced topic, quiz, user or
	// progress row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a malformed submission, e.g. an option
	// index outside the quiz's option list.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict indicates a duplicate unique field on create.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable indicates the backing store timed out or is down.
	ErrUnavailable = errors.New("storage unavailable")
)
