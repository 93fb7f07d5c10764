package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"":         zap.InfoLevel,
		"debug":    zap.DebugLevel,
		"warn":     zap.WarnLevel,
		"error":    zap.ErrorLevel,
		"nonsense": zap.InfoLevel,
	}

	for lvl, expected := range tests {
		t.Run(lvl, func(t *testing.T) {
			assert.Equal(t, expected, parseLevel(lvl).Level())
		})
	}
}

func TestNew(t *testing.T) {
	log, err := New("smsadmin", "debug", FormatDevelopment)
	require.NoError(t, err)

	assert.True(t, log.Core().Enabled(zap.DebugLevel))
}

func TestContextWithLogger(t *testing.T) {
	_, err := LoggerFromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoLoggerInContext)

	log := zap.NewNop()
	ctx := ContextWithLogger(context.Background(), log)

	actual, err := LoggerFromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, log, actual)
}
