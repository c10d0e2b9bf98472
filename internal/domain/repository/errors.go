package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup by identifier matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a store-level unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate")
)
