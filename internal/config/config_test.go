package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DSN", "root@tcp(localhost:3306)/vidly")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingEnv)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DSN", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingEnv)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DSN", "root@tcp(localhost:3306)/vidly")
	t.Setenv("APP_PORT", "")
	t.Setenv("AUTH_TOKEN_TTL", "")
	t.Setenv("BCRYPT_COST", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, time.Duration(0), cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoadTokenTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DSN", "dsn")
	t.Setenv("AUTH_TOKEN_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)

	t.Setenv("AUTH_TOKEN_TTL", "-1h")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadRateLimitClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	rl := LoadRateLimitConfig()
	assert.Equal(t, 1, rl.Capacity)
	assert.Equal(t, 10*time.Second, rl.TTL)
}

func TestLoadRedisConfig(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_TLS", "true")

	rc := LoadRedisConfig()
	assert.Equal(t, "cache:6380", rc.Addr)
	assert.Equal(t, 2, rc.DB)
	assert.True(t, rc.TLS)
	assert.True(t, rc.Enabled)

	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("REDIS_ENABLED", "false")
	rc = LoadRedisConfig()
	assert.Equal(t, "redis:6379", rc.Addr)
	assert.False(t, rc.Enabled)
}
