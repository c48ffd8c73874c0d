package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
)

type ConsoleLogger struct {
	base          *zap.Logger
	defaultFields out.LogFields
	module        string
}

// NewConsoleLogger builds a development console logger locally and a JSON logger elsewhere.
// Timestamps are written in the given timezone.
func NewConsoleLogger(timezone string, production bool) (*ConsoleLogger, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.In(loc).Format("2006-01-02 15:04:05.000"))
	}

	base, err := cfg.Build(zap.AddCallerSkip(2))
	if err != nil {
		return nil, err
	}

	return &ConsoleLogger{
		base:          base,
		defaultFields: make(out.LogFields),
	}, nil
}

// NewNopLogger discards everything.
func NewNopLogger() *ConsoleLogger {
	return &ConsoleLogger{
		base:          zap.NewNop(),
		defaultFields: make(out.LogFields),
	}
}

func (l *ConsoleLogger) WithFields(fields out.LogFields) out.LoggerPort {
	newLogger := &ConsoleLogger{
		base:          l.base,
		defaultFields: make(out.LogFields, len(l.defaultFields)+len(fields)),
		module:        l.module,
	}

	for k, v := range l.defaultFields {
		newLogger.defaultFields[k] = v
	}
	for k, v := range fields {
		newLogger.defaultFields[k] = v
	}

	return newLogger
}

func (l *ConsoleLogger) WithModule(module string) out.LoggerPort {
	return &ConsoleLogger{
		base:          l.base,
		defaultFields: l.defaultFields,
		module:        module,
	}
}

func (l *ConsoleLogger) Debug(event string, fields out.LogFields) {
	l.log(out.LogLevelDebug, event, fields)
}

func (l *ConsoleLogger) Info(event string, fields out.LogFields) {
	l.log(out.LogLevelInfo, event, fields)
}

func (l *ConsoleLogger) Warn(event string, fields out.LogFields) {
	l.log(out.LogLevelWarn, event, fields)
}

func (l *ConsoleLogger) Error(event string, fields out.LogFields) {
	l.log(out.LogLevelError, event, fields)
}

func (l *ConsoleLogger) Sync() error {
	return l.base.Sync()
}

func (l *ConsoleLogger) log(level out.LogLevel, event string, fields out.LogFields) {
	module := l.module
	if module == "" {
		module = "unknown"
	}

	zapFields := make([]zap.Field, 0, len(l.defaultFields)+len(fields)+1)
	zapFields = append(zapFields, zap.String("module", module))
	for k, v := range l.defaultFields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	switch level {
	case out.LogLevelDebug:
		l.base.Debug(event, zapFields...)
	case out.LogLevelInfo:
		l.base.Info(event, zapFields...)
	case out.LogLevelWarn:
		l.base.Warn(event, zapFields...)
	case out.LogLevelError:
		l.base.Error(event, zapFields...)
	}
}
