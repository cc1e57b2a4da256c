package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "DB_HOST", "DB_NAME", "BOARD_CACHE_TTL", "JWT_ACCESS_EXPIRY", "COOKIE_SECURE", "APP_ENV", "ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.BoardCacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWTAccessExpiry)
	assert.False(t, cfg.CookieSecure)
	assert.Contains(t, cfg.DatabaseURL, "dbname=delivery_management")
	assert.Contains(t, cfg.AllowedOrigins, "http://localhost:5174")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/watches")
	t.Setenv("BOARD_CACHE_TTL", "2m")
	t.Setenv("JWT_ACCESS_EXPIRY", "not-a-duration")
	t.Setenv("APP_ENV", "production")
	t.Setenv("COOKIE_SECURE", "")
	t.Setenv("ALLOWED_ORIGINS", "https://admin.example.com, ,https://shop.example.com")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://u:p@db:5432/watches", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Minute, cfg.BoardCacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWTAccessExpiry)
	assert.True(t, cfg.CookieSecure)
	assert.Contains(t, cfg.AllowedOrigins, "https://admin.example.com")
	assert.Contains(t, cfg.AllowedOrigins, "https://shop.example.com")
	assert.NotContains(t, cfg.AllowedOrigins, "")
}
