package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/jobly/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPgxTraceLogLevel(t *testing.T) {
	items := []struct {
		level zerolog.Level
		want  tracelog.LogLevel
	}{
		{zerolog.TraceLevel, tracelog.LogLevelTrace},
		{zerolog.DebugLevel, tracelog.LogLevelDebug},
		{zerolog.InfoLevel, tracelog.LogLevelInfo},
		{zerolog.WarnLevel, tracelog.LogLevelWarn},
		{zerolog.ErrorLevel, tracelog.LogLevelError},
		{zerolog.PanicLevel, tracelog.LogLevelError},
		{zerolog.Disabled, tracelog.LogLevelNone},
	}
	for _, item := range items {
		assert.Equal(t, item.want, tracelog.LogLevel(GetPgxTraceLogLevel(item.level)), item.level.String())
	}
}

func TestNewLoggerServiceDisabled(t *testing.T) {
	service, err := NewLoggerService(config.DefaultObservabilityConfig())
	require.NoError(t, err)

	assert.Nil(t, service.GetApplication())
	assert.Nil(t, service.StartTransaction("jobs list"))
	service.Shutdown(0)

	var nilService *LoggerService
	assert.Nil(t, nilService.GetApplication())
}

func TestNewLoggerJSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	log := newLogger(cfg, &buf, nil)

	log.Info().Msg("dropped")
	log.Warn().Str("job", "7").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "jobly", entry["service"])
	assert.Equal(t, "7", entry["job"])
}

func TestWithTraceContextNoTransaction(t *testing.T) {
	var buf bytes.Buffer
	log := WithTraceContext(zerolog.New(&buf), nil)

	log.Info().Msg("x")
	assert.NotContains(t, buf.String(), "trace.id")
}
