package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrUserExists         = errors.New("user already registered")
	ErrUserNotFound       = errors.New("user not found")

	ErrNoSession        = errors.New("no active session")
	ErrInvalidToken     = errors.New("invalid session token")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAlreadyStarted   = errors.New("already started")

	ErrInvalidFilter   = errors.New("invalid task filter")
	ErrInvalidPriority = errors.New("invalid task priority")
)
