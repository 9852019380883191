package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-1", "secret", time.Hour, "familienkasse")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "familienkasse", claims.Issuer)
}

func TestParseAndValidateJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-1", "secret", time.Hour, "familienkasse")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "other")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	token, err := generateJWTAt(time.Now().Add(-2*time.Hour), "user-1", "secret", time.Hour, "familienkasse")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
