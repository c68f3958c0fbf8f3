package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "5000", cfg.HTTP.Port)
	assert.Equal(t, "mongodb://127.0.0.1:27017", cfg.Mongo.URI)
	assert.Equal(t, "newshub", cfg.Mongo.Database)
	assert.Equal(t, defaultJWTSecret, cfg.JWT.Secret)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("JWT_SECRET", "supersecret")
	t.Setenv("JWT_TTL_HOURS", "24")
	t.Setenv("MONGODB_DATABASE", "newshub_test")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("LOG_JSON", "true")

	cfg := Load()

	assert.Equal(t, "9999", cfg.HTTP.Port)
	assert.Equal(t, "supersecret", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "newshub_test", cfg.Mongo.Database)
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadIgnoresBadNumbers(t *testing.T) {
	t.Setenv("JWT_TTL_HOURS", "not-a-number")
	t.Setenv("RATE_LIMIT_BURST", "many")

	cfg := Load()

	assert.Equal(t, 7*24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
}
