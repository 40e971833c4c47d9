package auth

import "errors"

// Error taxonomy for login, refresh and request authorization.
// Handlers map these to HTTP statuses; nothing here leaks whether the
// email or the password was the wrong half of a credential pair.
var (
	ErrInvalidCredentials  = errors.New("auth: invalid credentials")
	ErrAccountInactive     = errors.New("auth: account inactive")
	ErrAccountNotFound     = errors.New("auth: account not found")
	ErrInvalidToken        = errors.New("auth: invalid token")
	ErrTokenExpired        = errors.New("auth: token expired")
	ErrTokenExpiredTooLong = errors.New("auth: token expired beyond refresh grace")
	ErrEmailTaken          = errors.New("auth: email already registered")
	ErrInvalidInput        = errors.New("auth: invalid input")
)
