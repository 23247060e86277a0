package types

import "errors"

// Sentinel errors shared by every feature package. Repositories and
// services wrap these with %w; handlers map them to HTTP status codes.
var (
	ErrNotFound        = errors.New("requested item not found")
	ErrConflict        = errors.New("item already exists or conflict")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrForbidden       = errors.New("action forbidden")
	ErrBadRequest      = errors.New("invalid request")
	ErrInvalidToken    = errors.New("invalid or expired token")
)
