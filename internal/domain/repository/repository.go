package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup by id or key matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate")
	// ErrInvalidReference is returned when a write points at a missing row.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrInvalidValue is returned when a check constraint or column range
	// rejects a written value.
	ErrInvalidValue = errors.New("invalid value")
)
