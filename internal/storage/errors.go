package storage

import "errors"

// Storage errors for snapshot stores.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when attempting to insert a record
	// with a key that already exists. Snapshot stores are append-only.
	ErrDuplicateKey = errors.New("duplicate key: snapshot store does not allow updates")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
