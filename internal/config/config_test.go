package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	for k, v := range map[string]string{
		"WORKOUT_PRIMARY__ENV":                 "local",
		"WORKOUT_SERVER__PORT":                 "8080",
		"WORKOUT_SERVER__READ_TIMEOUT":         "30",
		"WORKOUT_SERVER__WRITE_TIMEOUT":        "30",
		"WORKOUT_SERVER__IDLE_TIMEOUT":         "60",
		"WORKOUT_DATABASE__HOST":               "localhost",
		"WORKOUT_DATABASE__PORT":               "5432",
		"WORKOUT_DATABASE__USER":               "workout",
		"WORKOUT_DATABASE__PASSWORD":           "workout",
		"WORKOUT_DATABASE__NAME":               "workout",
		"WORKOUT_DATABASE__SSL_MODE":           "disable",
		"WORKOUT_DATABASE__MAX_OPEN_CONNS":     "10",
		"WORKOUT_DATABASE__MAX_IDLE_CONNS":     "2",
		"WORKOUT_DATABASE__CONN_MAX_LIFETIME":  "300",
		"WORKOUT_DATABASE__CONN_MAX_IDLE_TIME": "60",
	} {
		t.Setenv(k, v)
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "database.ssl_mode", envKey("WORKOUT_DATABASE__SSL_MODE"))
	assert.Equal(t, "observability.health_checks.interval", envKey("WORKOUT_OBSERVABILITY__HEALTH_CHECKS__INTERVAL"))
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "local", cfg.Primary.Env)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
		assert.False(t, cfg.Server.LegacyDuplicateStatus)
		assert.False(t, cfg.Redis.Enabled())
		assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
		assert.Equal(t, "local", cfg.Observability.Environment)
		assert.Equal(t, 30*time.Second, cfg.Observability.HealthChecks.Interval)
	})

	t.Run("overrides", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("WORKOUT_SERVER__LEGACY_DUPLICATE_STATUS", "true")
		t.Setenv("WORKOUT_SERVER__RATE_LIMIT", "2.5")
		t.Setenv("WORKOUT_REDIS__ADDRESS", "localhost:6379")
		t.Setenv("WORKOUT_OBSERVABILITY__HEALTH_CHECKS__INTERVAL", "10s")
		t.Setenv("WORKOUT_OBSERVABILITY__LOGGING__LEVEL", "debug")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.True(t, cfg.Server.LegacyDuplicateStatus)
		assert.Equal(t, 2.5, cfg.Server.RateLimit)
		assert.True(t, cfg.Redis.Enabled())
		assert.Equal(t, 10*time.Second, cfg.Observability.HealthChecks.Interval)
		assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	})

	t.Run("missing database host", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("WORKOUT_DATABASE__HOST", "")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("auth requires a secret key", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("WORKOUT_AUTH__ENABLED", "true")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("unknown health check", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("WORKOUT_OBSERVABILITY__HEALTH_CHECKS__CHECKS", "database,kafka")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "kafka")
	})
}
