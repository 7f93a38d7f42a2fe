package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectfour/internal/config"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
	}
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestTokenRoundTrip(t *testing.T) {
	setTestConfig(t)

	token, err := GenerateToken(42, "alice", "sess-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	setTestConfig(t)

	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	setTestConfig(t)
	token, err := GenerateToken(1, "alice", "sess-1")
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "different-secret"
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.True(t, CheckPasswordHash("Sup3rSecret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.NoError(t, ValidatePasswordStrength("Abcdef12"))

	assert.Error(t, ValidatePasswordStrength("Ab1"), "too short")
	assert.Error(t, ValidatePasswordStrength("abcdefg1"), "no uppercase")
	assert.Error(t, ValidatePasswordStrength("ABCDEFG1"), "no lowercase")
	assert.Error(t, ValidatePasswordStrength("Abcdefgh"), "no digit")
}
