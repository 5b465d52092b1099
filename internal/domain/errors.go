package domain

import "errors"

// Classified store errors. Repositories and the facade translate the native
// postgres/mongo failures into exactly one of these; transport maps them to
// HTTP status codes.
var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned on unique-constraint / duplicate-key violations.
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidReference is returned when a write points at an absent parent
	// row (foreign-key violation).
	ErrInvalidReference = errors.New("referenced resource does not exist")

	// ErrInvalidInput is returned for check/not-null violations, document
	// validation failures and structurally invalid payloads.
	ErrInvalidInput = errors.New("invalid data provided")

	// ErrInternal wraps every store failure that has no narrower class.
	ErrInternal = errors.New("internal store error")
)
