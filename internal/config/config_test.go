package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "venuehub_test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("BCRYPT_COST", "4")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := Load()
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, 8, cfg.AccessTTLHours, "tokens default to an 8 hour TTL")
	assert.Equal(t, 3, cfg.StartingCredits, "businesses default to 3 starting credits")
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL_HOURS", "24")
	t.Setenv("STARTING_LEAD_CREDITS", "10")

	cfg := Load()
	assert.Equal(t, 24, cfg.AccessTTLHours)
	assert.Equal(t, 10, cfg.StartingCredits)
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "-5")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL, "TTL stretched to cover a full refill cycle")
}

func TestEnvBool(t *testing.T) {
	t.Setenv("FLAG", "off")
	assert.False(t, envBool("FLAG", true))
	t.Setenv("FLAG", "yes")
	assert.True(t, envBool("FLAG", false))
	t.Setenv("FLAG", "garbage")
	assert.True(t, envBool("FLAG", true))
}
