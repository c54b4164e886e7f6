package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := newConfig(viper.New())

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, "release", cfg.HTTP.GinMode)
	assert.Equal(t, 5, cfg.ShutdownTimeoutInSeconds)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Database.LogLevel)

	assert.Equal(t, DefaultAuthRealm, cfg.Auth.Realm)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Empty(t, cfg.Auth.SessionSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionLifetime)
	assert.True(t, cfg.Auth.SecureCookies)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.RateLimitWindow)
	assert.Equal(t, 30*time.Minute, cfg.Auth.LockoutDuration)
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/books.db")
	t.Setenv("AUTH_REALM", "Shelf")
	t.Setenv("AUTH_SECURE_COOKIES", "false")
	t.Setenv("AUTH_LOCKOUT_DURATION", "1m")

	cfg := newConfig(viper.New())

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/books.db", cfg.Database.Path)
	assert.Equal(t, "Shelf", cfg.Auth.Realm)
	assert.False(t, cfg.Auth.SecureCookies)
	assert.Equal(t, time.Minute, cfg.Auth.LockoutDuration)
}
