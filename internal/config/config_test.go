package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("CF_TEST_STRING", "value")

	assert.Equal(t, "value", GetEnv("CF_TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", GetEnv("CF_TEST_MISSING", "fallback"))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("CF_TEST_INT", "25")
	t.Setenv("CF_TEST_BAD_INT", "not-a-number")

	assert.Equal(t, 25, GetEnvAsInt("CF_TEST_INT", 5))
	assert.Equal(t, 5, GetEnvAsInt("CF_TEST_BAD_INT", 5))
	assert.Equal(t, 5, GetEnvAsInt("CF_TEST_INT_MISSING", 5))
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Contains(t, cfg.AllowedOrigins, cfg.FrontendURL)
	assert.NotZero(t, cfg.MatchmakingTimeout)
}
