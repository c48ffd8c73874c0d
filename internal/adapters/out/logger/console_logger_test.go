package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
)

func observed() (*ConsoleLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &ConsoleLogger{
		base:          zap.New(core),
		defaultFields: make(out.LogFields),
	}, logs
}

func TestConsoleLoggerModuleAndFields(t *testing.T) {
	base, logs := observed()

	log := base.WithModule("Backend").WithFields(out.LogFields{"session": "s1"})
	log.Warn("backend.schedule.failed", out.LogFields{"status": 502})

	entries := logs.All()
	assert.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "backend.schedule.failed", entry.Message)
	assert.Equal(t, zap.WarnLevel, entry.Level)

	ctx := entry.ContextMap()
	assert.Equal(t, "Backend", ctx["module"])
	assert.Equal(t, "s1", ctx["session"])
	assert.EqualValues(t, 502, ctx["status"])
}

func TestConsoleLoggerWithFieldsDoesNotLeak(t *testing.T) {
	base, logs := observed()

	_ = base.WithFields(out.LogFields{"leak": true})
	base.Info("plain", out.LogFields{})

	ctx := logs.All()[0].ContextMap()
	assert.NotContains(t, ctx, "leak")
	assert.Equal(t, "unknown", ctx["module"])
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger().WithModule("Any")
	assert.NotPanics(t, func() {
		log.Error("ignored", out.LogFields{"k": "v"})
	})
}
