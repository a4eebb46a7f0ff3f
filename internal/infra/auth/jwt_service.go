// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"notevault/config"
	"notevault/internal/domain/service"
)

// ErrInvalidToken is the single failure returned by Validate. Malformed
// payloads, signature mismatches and expired tokens are deliberately not
// distinguished so the caller cannot leak the difference to clients.
var ErrInvalidToken = errors.New("invalid or expired token")

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret   string        // Symmetric secret for signing and verifying tokens.
	tokenTTL time.Duration // Time-to-live for issued tokens.
}

// NewJWTService is the constructor for jwtService. The signing secret is
// passed in via configuration at construction time; no call site reads it
// from ambient state.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Token == "" {
		return nil, errors.New("token signing secret must be provided")
	}

	ttl := 30 * 24 * time.Hour
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return &jwtService{
		secret:   cfg.SecretKey.Token,
		tokenTTL: ttl,
	}, nil
}

// Generate creates a signed token embedding the user identity and an
// absolute expiry. The signature covers the full payload, so tampering
// with either invalidates the token.
func (s *jwtService) Generate(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate checks the signature and expiry of a token string and resolves
// the embedded user identity. Every failure mode returns ErrInvalidToken.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	var registered jwt.RegisteredClaims

	token, err := jwt.ParseWithClaims(tokenString, &registered, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(registered.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &service.Claims{
		UserID:           userID,
		RegisteredClaims: registered,
	}, nil
}

// TokenDuration returns the configured validity window for issued tokens.
func (s *jwtService) TokenDuration() time.Duration {
	return s.tokenTTL
}
