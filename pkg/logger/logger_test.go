package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewParsesLevel(t *testing.T) {
	l, err := New("debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New("warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNewFallsBackToInfo(t *testing.T) {
	l, err := New("chatty")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestPackageHelpersUseGlobalLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := Get()
	globalLogger = zap.New(core)
	t.Cleanup(func() { globalLogger = prev })

	Info("Database seeding completed", zap.String("path", "finance.db"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Database seeding completed", entry.Message)
	assert.Equal(t, "finance.db", entry.ContextMap()["path"])
}

func TestGetInitializesLazily(t *testing.T) {
	assert.NotNil(t, Get())
	assert.NotNil(t, Named(ComponentHTTP))
}
