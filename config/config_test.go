package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapEnv(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(mapEnv(map[string]string{
		"DATABASE_URL":   "postgres://localhost/sports",
		"JWT_SECRET_KEY": "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 10.0, cfg.AuthRateLimit)
	assert.Equal(t, 5, cfg.AuthRateBurst)
	assert.False(t, cfg.S3.Enabled())
	assert.False(t, cfg.SMTP.Enabled())
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(mapEnv(map[string]string{
		"DATABASE_URL":         "postgres://localhost/sports",
		"JWT_SECRET_KEY":       "secret",
		"SERVER_PORT":          "9000",
		"LOG_LEVEL":            "debug",
		"TOKEN_TTL":            "90m",
		"CORS_ALLOWED_ORIGINS": "https://sports.college.edu, http://localhost:5173 ,",
		"AUTO_MIGRATE":         "false",
		"S3_BUCKET":            "portal",
		"S3_ACCESS_KEY_ID":     "key",
		"S3_SECRET_ACCESS_KEY": "secret",
		"SMTP_HOST":            "smtp.college.edu",
		"SMTP_FROM":            "sports@college.edu",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"https://sports.college.edu", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.AutoMigrate)
	assert.True(t, cfg.S3.Enabled())
	assert.True(t, cfg.SMTP.Enabled())
}

func TestFromEnvCollectsErrors(t *testing.T) {
	_, err := FromEnv(mapEnv(map[string]string{
		"SERVER_PORT": "abc",
		"TOKEN_TTL":   "-1h",
	}))
	require.Error(t, err)
	for _, want := range []string{"DATABASE_URL", "JWT_SECRET_KEY", "SERVER_PORT", "TOKEN_TTL"} {
		assert.Contains(t, err.Error(), want)
	}
}
