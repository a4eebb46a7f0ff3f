package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by issued tokens.
type Claims struct {
	UserID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying bearer tokens.
// Possession of a valid token is the sole authorization mechanism; there
// is no revocation, so a token stays valid until its expiry passes.
type TokenService interface {
	// Generate issues a signed token binding the given user identity to
	// an absolute expiry.
	Generate(userID uuid.UUID) (string, error)

	// Validate verifies a token string. Malformed payloads, signature
	// mismatches and expired tokens all collapse to a single error so the
	// distinction is never leaked to the client.
	Validate(tokenString string) (*Claims, error)

	// TokenDuration returns the configured validity window for issued tokens.
	TokenDuration() time.Duration
}
