package domain

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller is authenticated but is
	// not the vendor of the property it tries to mutate.
	ErrForbidden = errors.New("forbidden")

	// ErrTokenInvalid is returned by token verifiers for credentials the
	// identity provider rejects (expired, malformed, revoked).
	ErrTokenInvalid = errors.New("invalid token")
)
