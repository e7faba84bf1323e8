package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("reads values from the environment", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("APP_ENV", "production")
		t.Setenv("HTTP_PORT", "9090")
		t.Setenv("DB_MAX_OPEN_CONNS", "7")
		t.Setenv("ORDER_STRICT_TRANSITIONS", "true")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

		cfg := Load()

		assert.Equal(t, "production", cfg.Env)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, "9090", cfg.HTTPPort)
		assert.Equal(t, 7, cfg.DBMaxOpenConns)
		assert.True(t, cfg.StrictOrderTransitions)
		assert.Equal(t, "https://a.example,https://b.example", cfg.AllowedOrigins())
	})

	t.Run("falls back to defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("APP_ENV", "")
		t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
		t.Setenv("ORDER_STRICT_TRANSITIONS", "")

		cfg := Load()

		assert.Equal(t, "development", cfg.Env)
		assert.False(t, cfg.IsProduction())
		assert.Equal(t, 20, cfg.DBMaxOpenConns)
		assert.Equal(t, 24, cfg.JWTExpirationHours)
		assert.False(t, cfg.StrictOrderTransitions)
		assert.Empty(t, cfg.RedisURL)
	})
}
