// Package service contains application services that orchestrate domain
// logic and storage.
package service

import "errors"

// Common service errors.
var (
	// ErrInvalidAttempt is returned when a submitted attempt fails domain
	// validation. The wrapped error carries the specific field failure.
	ErrInvalidAttempt = errors.New("invalid attempt")
)
