// logging/logger.go
package logging

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps Zap with context-aware methods. Every log call runs the
// registered enrichers against the supplied context before the record is
// handed to the cores.
type Logger struct {
	zap       *zap.Logger
	config    *Config
	enrichers []Enricher

	// withKeys are field names pinned via With (or constant config fields).
	// Enricher output for these keys is dropped so an event never carries
	// the same property twice.
	withKeys map[string]bool
}

// New creates a logger from config. otelProvider can be nil to disable
// OTEL output. The logger starts with the correlation-ID and request-ID
// enrichers registered.
func New(cfg *Config, otelProvider log.LoggerProvider) (*Logger, error) {
	if cfg == nil {
		return nil, fmt.Errorf("logging: config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	core, err := newDualCore(cfg, otelProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create core: %w", err)
	}

	opts := []zap.Option{}
	if cfg.Caller.Enabled {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(cfg.Caller.Skip))
	}
	if cfg.Stacktrace.Level != 0 {
		opts = append(opts, zap.AddStacktrace(cfg.Stacktrace.Level))
	}

	zapLogger := zap.New(core, opts...)

	var withKeys map[string]bool
	if len(cfg.Fields) > 0 {
		fields := make([]zap.Field, 0, len(cfg.Fields))
		withKeys = make(map[string]bool, len(cfg.Fields))
		for k, v := range cfg.Fields {
			fields = append(fields, zap.String(k, v))
			withKeys[k] = true
		}
		zapLogger = zapLogger.With(fields...)
	}

	return &Logger{
		zap:       zapLogger,
		config:    cfg,
		enrichers: defaultEnrichers(),
		withKeys:  withKeys,
	}, nil
}

// NewFromCore builds a logger directly over a zapcore.Core, with the
// default enrichers registered. Intended for wiring captures and custom
// sinks.
func NewFromCore(core zapcore.Core) *Logger {
	return &Logger{
		zap:       zap.New(core),
		config:    NewDefaultConfig(),
		enrichers: defaultEnrichers(),
	}
}

// newEncoder creates the JSON or console encoder.
func newEncoder(format string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "console" {
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}

// enrich runs the registered enrichers over the call's fields. Enricher
// additions whose key is already pinned via With are dropped; the caller's
// own fields are never filtered.
func (l *Logger) enrich(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		ctx = context.Background()
	}
	base := len(fields)
	for _, e := range l.enrichers {
		fields = e(ctx, fields)
	}
	if len(l.withKeys) == 0 {
		return fields
	}
	out := fields[:base]
	for _, f := range fields[base:] {
		if !l.withKeys[f.Key] {
			out = append(out, f)
		}
	}
	return out
}

// Context-aware logging methods

func (l *Logger) Trace(ctx context.Context, msg string, fields ...zap.Field) {
	if l.Enabled(TraceLevel) {
		l.zap.Log(TraceLevel, msg, l.enrich(ctx, fields)...)
	}
}

func (l *Logger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	l.zap.Debug(msg, l.enrich(ctx, fields)...)
}

func (l *Logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.zap.Info(msg, l.enrich(ctx, fields)...)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.zap.Warn(msg, l.enrich(ctx, fields)...)
}

func (l *Logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.zap.Error(msg, l.enrich(ctx, fields)...)
}

func (l *Logger) DPanic(ctx context.Context, msg string, fields ...zap.Field) {
	l.zap.DPanic(msg, l.enrich(ctx, fields)...)
}

func (l *Logger) Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	l.zap.Fatal(msg, l.enrich(ctx, fields)...)
}

// Child logger creation

// With returns a child logger with the fields attached to every event. The
// field keys are recorded so enrichers never attach a second property under
// the same name.
func (l *Logger) With(fields ...zap.Field) *Logger {
	keys := make(map[string]bool, len(l.withKeys)+len(fields))
	for k := range l.withKeys {
		keys[k] = true
	}
	for _, f := range fields {
		keys[f.Key] = true
	}
	return &Logger{
		zap:       l.zap.With(fields...),
		config:    l.config,
		enrichers: l.enrichers,
		withKeys:  keys,
	}
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{
		zap:       l.zap.Named(name),
		config:    l.config,
		enrichers: l.enrichers,
		withKeys:  l.withKeys,
	}
}

// WithEnricher returns a child logger with an additional enricher appended
// after the existing ones. Panics if e is nil.
func (l *Logger) WithEnricher(e Enricher) *Logger {
	if e == nil {
		panic("logging: enricher cannot be nil")
	}
	enrichers := make([]Enricher, 0, len(l.enrichers)+1)
	enrichers = append(enrichers, l.enrichers...)
	enrichers = append(enrichers, e)
	return &Logger{
		zap:       l.zap,
		config:    l.config,
		enrichers: enrichers,
		withKeys:  l.withKeys,
	}
}

// Enabled returns true if the given level is enabled.
func (l *Logger) Enabled(level zapcore.Level) bool {
	return l.zap.Core().Enabled(level)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	err := l.zap.Sync()
	// Ignore sync errors on stdout/stderr (common on Linux)
	if err != nil && isStdoutSyncError(err) {
		return nil
	}
	return err
}

// Underlying returns the underlying zap.Logger. Useful when integrating
// with libraries that require a *zap.Logger; enrichers do not run for calls
// made through it.
func (l *Logger) Underlying() *zap.Logger {
	return l.zap
}

// isStdoutSyncError checks if error is a harmless stdout/stderr sync error.
// On Linux, syncing stdout/stderr returns EINVAL or ENOTTY.
func isStdoutSyncError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EINVAL || errno == syscall.ENOTTY
	}
	return false
}
