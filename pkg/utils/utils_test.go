package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.GenerateJWT("operator", "operator")
	require.NoError(t, err)

	claims, err := issuer.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Subject)
	assert.Equal(t, "operator", claims.Role)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("a", time.Hour).GenerateJWT("operator", "operator")
	require.NoError(t, err)

	_, err = NewTokenIssuer("b", time.Hour).ParseJWT(token)
	assert.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := issuer.GenerateJWT("operator", "operator")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.ParseJWT(token)
	assert.Error(t, err)
}

func TestJWTRequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour).GenerateJWT("operator", "operator")
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("furnace")
	require.NoError(t, err)

	assert.True(t, CheckPassword("furnace", hash))
	assert.False(t, CheckPassword("smelter", hash))
	assert.False(t, CheckPassword("furnace", "not-a-hash"))
}
