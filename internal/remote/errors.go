package remote

import "errors"

var (
	ErrUnavailable        = errors.New("remote service unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrUnknownCollection  = errors.New("unknown collection")
	ErrInvalidCredentials = errors.New("invalid login credentials")
)
