package database

import "errors"

var (
	// ErrNotFound means the id has no matching record.
	ErrNotFound = errors.New("record not found")

	// ErrValidation means a required field is missing or malformed.
	// No partial write happens when it is returned.
	ErrValidation = errors.New("validation failed")
)
