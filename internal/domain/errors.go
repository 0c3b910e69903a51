package domain

import "errors"

// Sentinel errors shared by services and repositories. Handlers map these to
// HTTP status codes with errors.Is; raw store errors never cross the API
// boundary.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrForbidden          = errors.New("access denied")
	ErrValidation         = errors.New("validation failed")
)
