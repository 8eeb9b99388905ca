package repositories

import (
	"errors"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected storage errors.
	// It wraps the more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when a write would break a uniqueness rule.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrCorruptCollection is returned by a store when a collection exists
	// but cannot be decoded. Repositories treat it as "first run".
	ErrCorruptCollection = errors.New("collection is not valid JSON for its type")
)
