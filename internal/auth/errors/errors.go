package errors

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")

	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrMissingCredentials = errors.New("missing credentials")

	ErrInvalidToken = errors.New("invalid or expired token")

	ErrUserExists = errors.New("user already exists")
)
