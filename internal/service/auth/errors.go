package auth

import "errors"

var (
	// ErrInvalidCredentials indicates an unknown email or a wrong password.
	// The two cases are not distinguished.
	ErrInvalidCredentials = errors.New("invalid login credentials")

	// ErrInvalidToken indicates a malformed, expired or revoked bearer token.
	ErrInvalidToken = errors.New("invalid token")
)
