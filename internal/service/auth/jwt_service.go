package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Claims holds the validated contents of an access token.
type Claims struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// JWTService defines the interface for issuing and validating access tokens.
type JWTService interface {
	// GenerateToken creates a signed access token carrying the user's ID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies a token's signature and expiry and returns its
	// claims. Returns ErrExpiredToken for expired tokens and ErrInvalidToken
	// for anything else that fails verification.
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}
