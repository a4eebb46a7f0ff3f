package auth

import (
	"strings"
	"testing"
	"time"

	"notevault/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{TokenTTL: ttl},
	}
	cfg.SecretKey.Token = secret

	return cfg
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig("test_token_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	userID := uuid.New()

	token, err := svc.Generate(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig("test_token_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	claims, err := svc.Validate("clearly-not-a-jwt-token-format")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig("test_token_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	token, err := svc.Generate(uuid.New())
	require.NoError(t, err)

	// Swap the payload segment for one from a token with a different
	// identity; the signature no longer covers it.
	other, err := svc.Generate(uuid.New())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	require.Len(t, parts, 3)
	tampered := strings.Join([]string{parts[0], otherParts[1], parts[2]}, ".")

	claims, err := svc.Validate(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecret(t *testing.T) {
	// Distinct secrets per service instance; a token minted by one must
	// never verify under another.
	issuer, err := NewJWTService(newTestTokenConfig("issuer_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTestTokenConfig("verifier_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	token, err := issuer.Generate(uuid.New())
	require.NoError(t, err)

	claims, err := verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	// Issue with an expiry already in the past.
	svc := &jwtService{secret: "test_token_secret_key_very_long_for_testing", tokenTTL: -time.Minute}

	token, err := svc.Generate(uuid.New())
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecret(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig("", time.Hour))
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "token signing secret must be provided")
}

func TestJWTService_DefaultTokenDuration(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig("test_token_secret_key_very_long_for_testing", 0))
	require.NoError(t, err)

	assert.Equal(t, 30*24*time.Hour, svc.TokenDuration())
}
