package services

import (
	"errors"
)

// Error taxonomy shared by handlers and middleware. Handlers map these to
// flash-and-redirect on page routes and to status codes on API routes.
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrValidation         = errors.New("validation failed")
)
