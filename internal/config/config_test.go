package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JOBLY_PRIMARY__ENV", "development")
	t.Setenv("JOBLY_DATABASE__HOST", "localhost")
	t.Setenv("JOBLY_DATABASE__PORT", "5432")
	t.Setenv("JOBLY_DATABASE__USER", "jobly")
	t.Setenv("JOBLY_DATABASE__PASSWORD", "secret")
	t.Setenv("JOBLY_DATABASE__NAME", "jobly_test")
	t.Setenv("JOBLY_DATABASE__SSL_MODE", "disable")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "database.ssl_mode", envKey("JOBLY_DATABASE__SSL_MODE"))
	assert.Equal(t, "observability.new_relic.license_key", envKey("JOBLY_OBSERVABILITY__NEW_RELIC__LICENSE_KEY"))
	assert.Equal(t, "primary.env", envKey("JOBLY_PRIMARY__ENV"))
}

func TestLoadConfig(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "jobly_test", cfg.Database.Name)

	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2, cfg.Database.MaxIdleConns)
	assert.Equal(t, time.Hour, cfg.Database.MaxLifetime())
	assert.Equal(t, 5*time.Minute, cfg.Database.MaxIdleTime())

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "jobly", cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.False(t, cfg.Observability.NewRelic.Enabled())
}

func TestLoadConfigNested(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JOBLY_DATABASE__MAX_OPEN_CONNS", "25")
	t.Setenv("JOBLY_OBSERVABILITY__LOGGING__LEVEL", "warn")
	t.Setenv("JOBLY_OBSERVABILITY__LOGGING__FORMAT", "console")
	t.Setenv("JOBLY_OBSERVABILITY__NEW_RELIC__LICENSE_KEY", "abc")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "warn", cfg.Observability.GetLogLevel())
	assert.Equal(t, "console", cfg.Observability.Logging.Format)
	assert.Equal(t, 100*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.True(t, cfg.Observability.NewRelic.Enabled())
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JOBLY_DATABASE__HOST", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigBadLevel(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JOBLY_OBSERVABILITY__LOGGING__LEVEL", "loud")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "invalid logging level")
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "jobly", Password: "p@ss", Name: "jobly", SSLMode: "disable"}
	assert.Equal(t, "postgres://jobly:p%40ss@db:5432/jobly?sslmode=disable", c.DSN())

	c.Password = ""
	assert.Equal(t, "postgres://jobly@db:5432/jobly?sslmode=disable", c.DSN())
}

func TestGetLogLevel(t *testing.T) {
	items := []struct {
		env, level, want string
	}{
		{"production", "", "info"},
		{"development", "", "debug"},
		{"staging", "", "debug"},
		{"production", "error", "error"},
	}
	for _, item := range items {
		c := &ObservabilityConfig{Environment: item.env, Logging: LoggingConfig{Level: item.level}}
		assert.Equal(t, item.want, c.GetLogLevel(), item.env+"/"+item.level)
	}
}
