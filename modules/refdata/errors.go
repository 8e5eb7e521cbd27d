package refdata

import "errors"

var (
	// ErrNotFound is returned when the referenced entity does not exist.
	ErrNotFound = errors.New("entity not found")
	// ErrConflict is returned when a uniqueness constraint would be violated.
	ErrConflict = errors.New("entity already exists")
)
