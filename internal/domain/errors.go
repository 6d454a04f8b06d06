package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when creating a zone whose id is already present.
// Handlers should map this to HTTP 409 Conflict.
var ErrDuplicate = errors.New("duplicate key")

// ErrInvalidInput is returned by service functions when input violates a
// business rule (non-positive id, blank name, pickup equal to dropoff,
// referenced zone missing).
// Handlers should map this to HTTP 400.
var ErrInvalidInput = errors.New("invalid input")

// ErrSchema is returned when an uploaded trip file lacks a required column.
// It aborts the whole upload before any store mutation.
// Handlers should map this to HTTP 400.
var ErrSchema = errors.New("schema error")

// ErrValidation is returned for shape-level request failures (malformed
// body, out-of-range form values).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
