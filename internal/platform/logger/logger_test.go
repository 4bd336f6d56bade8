package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/srgjo27/movie_booking/internal/platform/logger"
)

func TestNew(t *testing.T) {
	log, err := logger.New("warn")
	require.NoError(t, err)
	require.NotNil(t, log)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_BadLevel(t *testing.T) {
	log, err := logger.New("verbose")

	assert.Error(t, err)
	assert.Nil(t, log)
}
