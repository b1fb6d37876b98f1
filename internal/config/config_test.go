package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "SESSION_BACKEND", "SESSION_TTL", "BCRYPT_COST", "MAIL_PORT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.SessionBackend)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 465, cfg.MailPort)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("MAIL_PORT", "587")

	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "redis", cfg.SessionBackend)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 587, cfg.MailPort)
}

func TestLoadIgnoresUnparsableValues(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("BCRYPT_COST", "lots")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
}
