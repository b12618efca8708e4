// Package auth provides the identity collaborator: password verification and
// JWT issuance/validation. The practice core only consumes the user ID this
// package resolves.
package auth

import "errors"

// Common authentication errors.
var (
	// ErrInvalidToken is returned when a token is malformed or its signature
	// cannot be verified.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token expired")

	// ErrInvalidCredentials is returned when an email/password pair does not
	// match a stored user. Deliberately indistinguishable between "unknown
	// email" and "wrong password".
	ErrInvalidCredentials = errors.New("invalid credentials")
)
