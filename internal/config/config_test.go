package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Empty(t, cfg.RedisAddr)

	key, err := cfg.SealKeyBytes()
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("REVIEW_ENABLED", "false")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.False(t, cfg.ReviewEnabled)
}

func TestNewConfig_Validation(t *testing.T) {
	t.Run("empty jwt secret", func(t *testing.T) {
		cfg, err := NewConfig()
		require.NoError(t, err)
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("short seal key", func(t *testing.T) {
		t.Setenv("SEAL_KEY", "abcd")
		_, err := NewConfig()
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "soon")
		_, err := NewConfig()
		assert.Error(t, err)
	})
}
