package model

import "errors"

var (
	// User related errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already in use")

	// Credential errors. Unknown-user and wrong-password both map here so
	// responses cannot be used for username enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token related errors
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")

	// Request errors
	ErrInvalidEmail = errors.New("invalid email address")
	ErrUnauthorized = errors.New("unauthorized")
)
