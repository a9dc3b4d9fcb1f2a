package repositories

import "errors"

var (
	// ErrNotFound is returned when the requested document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID is returned for identifiers that cannot be a document id.
	ErrInvalidID = errors.New("invalid id")
)
