package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	// ErrorCorruptRecord marks a stored record that exists but cannot be decoded.
	ErrorCorruptRecord = errors.New("corrupt record")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorPermissionDenied   = errors.New("permission denied")
	ErrorValidation         = errors.New("validation error")
	ErrTooManyLoginAttempts = errors.New("too many login attempts, please try again later")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
