package logger

import (
	"testing"

	"github.com/deppfellow/acme-hr-directory/internal/config"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestGetPgxTraceLogLevel(t *testing.T) {
	tests := []struct {
		level zerolog.Level
		want  tracelog.LogLevel
	}{
		{zerolog.DebugLevel, tracelog.LogLevelDebug},
		{zerolog.InfoLevel, tracelog.LogLevelInfo},
		{zerolog.WarnLevel, tracelog.LogLevelWarn},
		{zerolog.ErrorLevel, tracelog.LogLevelError},
		{zerolog.TraceLevel, tracelog.LogLevelNone},
		{zerolog.Disabled, tracelog.LogLevelNone},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, GetPgxTraceLogLevel(tt.level))
		})
	}
}

func TestNewPgxTracerFollowsLoggerLevel(t *testing.T) {
	tracer := NewPgxTracer(NewPgxLogger(zerolog.WarnLevel))
	assert.Equal(t, tracelog.LogLevelWarn, tracer.LogLevel)
}

func TestNewLoggerLevel(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()

	cfg.Logging.Level = "warn"
	assert.Equal(t, zerolog.WarnLevel, NewLoggerWithService(cfg, nil).GetLevel())

	cfg.Logging.Level = "bogus"
	assert.Equal(t, zerolog.InfoLevel, NewLoggerWithService(cfg, nil).GetLevel())

	cfg.Logging.Level = ""
	cfg.Environment = "development"
	assert.Equal(t, zerolog.DebugLevel, NewLoggerWithService(cfg, nil).GetLevel())
}

func TestLoggerServiceWithoutLicense(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()

	ls := NewLoggerService(cfg)
	assert.Nil(t, ls.GetApplication())
	assert.NotPanics(t, ls.Shutdown)

	var nilService *LoggerService
	assert.Nil(t, nilService.GetApplication())
	assert.NotPanics(t, nilService.Shutdown)
}

func TestWithTraceContextWithoutTransaction(t *testing.T) {
	base := zerolog.Nop()
	assert.Equal(t, base, WithTraceContext(base, nil))
}
