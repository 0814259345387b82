// Package apperr holds the error kinds shared by every layer. Repositories
// translate driver errors into these, handlers map them onto HTTP codes.
package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	// ErrConflict is returned when a store uniqueness constraint rejects a write.
	ErrConflict = errors.New("conflict")
)
