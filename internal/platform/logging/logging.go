// Package logging provides the structured logger shared by every service in
// this module, wrapping zap with the fields and defaults used throughout.
package logging

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// Config controls logger construction. Values default from environment
// variables when a field is left zero.
type Config struct {
	ServiceName string
	Version     string
	Environment string
	Level       string
}

// Logger wraps a *zap.Logger with the service identity baked into every line.
type Logger struct {
	zl          *zap.Logger
	serviceName string
	version     string
	environment string
}

func loadConfig(cfg Config) Config {
	if cfg.ServiceName == "" {
		cfg.ServiceName = getEnv("SERVICE_NAME", "blimpco")
	}
	if cfg.Version == "" {
		cfg.Version = getEnv("SERVICE_VERSION", "dev")
	}
	if cfg.Environment == "" {
		cfg.Environment = getEnv("ENVIRONMENT", "development")
	}
	if cfg.Level == "" {
		cfg.Level = getEnv("LOG_LEVEL", "info")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// New constructs a Logger from the supplied Config, env-defaulting any
// unset fields.
func New(cfg Config) (*Logger, error) {
	cfg = loadConfig(cfg)

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Environment == "development" {
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zl, err := zcfg.Build()
	if err != nil {
		return nil, err
	}

	zl = zl.With(
		zap.String("service", cfg.ServiceName),
		zap.String("version", cfg.Version),
		zap.String("environment", cfg.Environment),
	)

	return &Logger{zl: zl, serviceName: cfg.ServiceName, version: cfg.Version, environment: cfg.Environment}, nil
}

// WithContext attaches a request id carried on ctx, if any.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		return l.WithFields(zap.String("request_id", id))
	}
	return l
}

// ContextWithRequestID returns a context carrying the given request id, for
// later retrieval via WithContext.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// WithFields returns a derived Logger carrying the extra structured fields.
func (l *Logger) WithFields(fields ...zap.Field) *Logger {
	return &Logger{zl: l.zl.With(fields...), serviceName: l.serviceName, version: l.version, environment: l.environment}
}

// WithError returns a derived Logger carrying the error field.
func (l *Logger) WithError(err error) *Logger {
	return l.WithFields(zap.Error(err))
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zl.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.zl.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.zl.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.zl.Error(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...zap.Field) { l.zl.Fatal(msg, fields...) }

// DomainEvent logs a published domain event at info level with a uniform shape.
func (l *Logger) DomainEvent(eventName string, aggregateID string, fields ...zap.Field) {
	all := append([]zap.Field{zap.String("event", eventName), zap.String("aggregate_id", aggregateID)}, fields...)
	l.zl.Info("domain event published", all...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error { return l.zl.Sync() }

var global *Logger

// InitGlobal constructs and installs the process-wide logger.
func InitGlobal(cfg Config) (*Logger, error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	global = l
	return l, nil
}

// Global returns the process-wide logger, constructing a default one if
// InitGlobal was never called.
func Global() *Logger {
	if global == nil {
		l, _ := New(Config{})
		global = l
	}
	return global
}
