package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	password := "secret123"

	hash, err := HashPassword(password)
	require.NoError(t, err)
	assert.NotEqual(t, password, hash)
	assert.NotEmpty(t, hash)
	assert.False(t, IsLegacyHash(hash))

	assert.True(t, CheckPasswordHash(password, hash))
	assert.False(t, CheckPasswordHash("wrongpassword", hash))
}

func TestLegacyHash(t *testing.T) {
	// sha256("password1")
	legacy := "0b14d501a594442a01c6859541bcb3e8164d183d32937b851835442f69d5c94e"

	assert.True(t, IsLegacyHash(legacy))
	assert.True(t, CheckLegacyHash("password1", legacy))
	assert.False(t, CheckLegacyHash("password2", legacy))
	assert.False(t, IsLegacyHash("not-hex"))
	assert.False(t, CheckPasswordHash("password1", legacy))
}

func TestSessionToken(t *testing.T) {
	secret := "test-secret-key-12345"

	token, err := GenerateSessionToken("sid-1", "jane.doe@expocci.com", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, secret)
	require.NoError(t, err)
	sid, ok := SessionID(claims)
	assert.True(t, ok)
	assert.Equal(t, "sid-1", sid)
	assert.Equal(t, "jane.doe@expocci.com", claims["email"])

	_, err = ValidateToken(token, "wrong-key")
	assert.Error(t, err)

	expired, err := GenerateSessionToken("sid-2", "a@expocci.com", secret, -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(expired, secret)
	assert.Error(t, err)
}
