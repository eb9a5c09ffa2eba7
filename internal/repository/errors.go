package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a unique email constraint is violated.
	ErrDuplicateEmail = errors.New("email already registered")
)

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (duplicate-handle registration under race surfaces here).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
