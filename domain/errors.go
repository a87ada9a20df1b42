package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUnauthorized       = errors.New("unauthorized access")
)

// Activation errors
var (
	ErrActivationCodeMismatch = errors.New("invalid activation code")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
)

// Validation errors
var (
	ErrMissingFields = errors.New("missing required fields")
)
