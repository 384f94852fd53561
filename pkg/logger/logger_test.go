package logger_test

import (
	"dsmovie/pkg/logger"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("builds a development logger for local", func(t *testing.T) {
		l, err := logger.New("local")

		require.NoError(t, err)
		assert.True(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("builds a production logger otherwise", func(t *testing.T) {
		l, err := logger.New("production")

		require.NoError(t, err)
		assert.False(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
		assert.True(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
	})
}

func TestNOOPLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.NOOPLogger.Infow("ignored", "key", "value")
	})
	assert.False(t, logger.NOOPLogger.Desugar().Core().Enabled(zapcore.ErrorLevel))
}
