package repositories

import "errors"

var (
	// ErrNotFound is returned when no record matches the requested key.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a record would violate a uniqueness rule.
	ErrConflict = errors.New("record already exists")
)
