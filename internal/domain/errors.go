package domain

import "errors"

var (
	// ErrMaterialNotFound is returned when a referenced material does not exist.
	ErrMaterialNotFound = errors.New("material not found")
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when login email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
