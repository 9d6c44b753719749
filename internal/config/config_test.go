package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"TELEGRAM_TOKEN", "DB_DSN", "ENV", "STORAGE", "MIGRATIONS_PATH", "TIMEZONE",
	"REMINDER_SCHEDULE", "STALE_REQUEST_AFTER", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("DB_DSN", "postgres://localhost/slots")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, "Europe/Moscow", cfg.Location.String())
	assert.Equal(t, "@every 6h", cfg.ReminderSchedule)
	assert.Equal(t, 24*time.Hour, cfg.StaleRequestAfter)
	assert.Equal(t, 1.0, cfg.RateLimitRPS)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Equal(t, "postgres://localhost/slots", cfg.GetDBDSN())
}

func TestFromEnv_MemoryStorageNeedsNoDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("STORAGE", "memory")
	t.Setenv("ENV", "production")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("REMINDER_SCHEDULE", "0 9 * * *")
	t.Setenv("STALE_REQUEST_AFTER", "90m")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("RATE_LIMIT_BURST", "3")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 90*time.Minute, cfg.StaleRequestAfter)
	assert.Equal(t, 0.5, cfg.RateLimitRPS)
	assert.Equal(t, 3, cfg.RateLimitBurst)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing token", map[string]string{"STORAGE": "memory"}, "TELEGRAM_TOKEN"},
		{"postgres without dsn", map[string]string{"TELEGRAM_TOKEN": "t"}, "DB_DSN"},
		{"unknown storage", map[string]string{"TELEGRAM_TOKEN": "t", "STORAGE": "redis"}, "STORAGE"},
		{"bad timezone", map[string]string{"TELEGRAM_TOKEN": "t", "STORAGE": "memory", "TIMEZONE": "Mars/Base"}, "TIMEZONE"},
		{"bad cron", map[string]string{"TELEGRAM_TOKEN": "t", "STORAGE": "memory", "REMINDER_SCHEDULE": "sometimes"}, "REMINDER_SCHEDULE"},
		{"bad duration", map[string]string{"TELEGRAM_TOKEN": "t", "STORAGE": "memory", "STALE_REQUEST_AFTER": "day"}, "STALE_REQUEST_AFTER"},
		{"negative duration", map[string]string{"TELEGRAM_TOKEN": "t", "STORAGE": "memory", "STALE_REQUEST_AFTER": "-1h"}, "STALE_REQUEST_AFTER"},
		{"bad rps", map[string]string{"TELEGRAM_TOKEN": "t", "STORAGE": "memory", "RATE_LIMIT_RPS": "fast"}, "RATE_LIMIT_RPS"},
		{"zero burst", map[string]string{"TELEGRAM_TOKEN": "t", "STORAGE": "memory", "RATE_LIMIT_BURST": "0"}, "RATE_LIMIT_BURST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
