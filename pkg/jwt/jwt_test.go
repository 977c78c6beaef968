package jwt

import (
	"testing"
	"time"

	"sagra/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})

	token, tokenID, err := svc.GenerateAccessToken("admin", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestJWTService_RejectsOtherSecret(t *testing.T) {
	signer := NewJWTService(config.JWTConfig{Secret: "one", AccessExpiry: time.Hour})
	verifier := NewJWTService(config.JWTConfig{Secret: "two", AccessExpiry: time.Hour})

	token, _, err := signer.GenerateAccessToken("user", "staff")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Minute})
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, _, err := svc.GenerateAccessToken("user", "staff")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})
	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
