package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "sweets")
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "jwt-secret", cfg.JWTSecret)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.IsProd)
	assert.Equal(t, "shop:secret@tcp(localhost:3306)/sweets?parseTime=true", cfg.DSN())
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("REDIS_DB", "")
	t.Setenv("IS_PROD", "")

	cfg := LoadConfig()
	assert.Equal(t, 0, cfg.RedisDB)
	assert.False(t, cfg.IsProd)
}
