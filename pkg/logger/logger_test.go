package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"portfolio-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestInitReplacesLogger(t *testing.T) {
	l := logger.Init("error")
	assert.Same(t, l, logger.Log)
	assert.False(t, l.Enabled(context.Background(), slog.LevelInfo))
}
