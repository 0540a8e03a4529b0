package domain

import "errors"

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, budget below zero).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrUnauthenticated is returned when a request requires an identity but no
// valid bearer token was presented.
// Handlers should map this to HTTP 401.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden is returned when an authenticated identity is not allowed to
// perform the operation on the resource (wrong owner, private trip).
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")
