package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/limaJavier/lessonplanner/pkg/config"
)

func TestNew(t *testing.T) {
	t.Run("Level from config", func(t *testing.T) {
		logr, err := New(&config.Config{Env: config.EnvProduction, Log: config.LogConfig{Level: "warn", Format: "json"}})

		require.NoError(t, err)
		assert.False(t, logr.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logr.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("Unknown level falls back to info", func(t *testing.T) {
		logr, err := New(&config.Config{Env: config.EnvDevelopment, Log: config.LogConfig{Level: "chatty", Format: "console"}})

		require.NoError(t, err)
		assert.False(t, logr.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, logr.Core().Enabled(zapcore.InfoLevel))
	})
}
