package services

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these
// into HTTP status codes with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrDuplicateUsername  = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOutOfStock         = errors.New("out of stock")
)
