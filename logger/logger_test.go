package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNopLoggerBeforeInitialize(t *testing.T) {
	// Package init installs a no-op logger; wrappers must not panic.
	require.NotNil(t, Logger)
	Info("no-op")
	Debugw("no-op", "k", "v")
	Errorw("no-op", "k", "v")
}

func TestInitialize(t *testing.T) {
	err := Initialize(false, VerbosityDebug)
	require.NoError(t, err)
	require.NotNil(t, Logger)
	assert.False(t, JSONOutput)

	err = Initialize(true, VerbosityUser)
	require.NoError(t, err)
	assert.True(t, JSONOutput)

	Cleanup()
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		expected  zapcore.Level
	}{
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{5, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, VerbosityToLevel(tt.verbosity))
	}
}

func TestEnvOverrideLevel(t *testing.T) {
	t.Setenv("CANONMETA_LOG_LEVEL", "debug")
	assert.Equal(t, zapcore.DebugLevel, envOverrideLevel(zapcore.WarnLevel))

	t.Setenv("CANONMETA_LOG_LEVEL", "not-a-level")
	assert.Equal(t, zapcore.WarnLevel, envOverrideLevel(zapcore.WarnLevel))
}
