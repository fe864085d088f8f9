package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrLocked                = errors.New("submission is locked")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
