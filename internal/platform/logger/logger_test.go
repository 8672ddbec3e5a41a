package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/keepsake-app/keepsake-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	// Not parallel: Setup replaces the process default logger.
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	testCases := []struct {
		name      string
		logLevel  string
		wantLevel slog.Level
	}{
		{name: "debug level", logLevel: "debug", wantLevel: slog.LevelDebug},
		{name: "info level", logLevel: "info", wantLevel: slog.LevelInfo},
		{name: "warn level", logLevel: "warn", wantLevel: slog.LevelWarn},
		{name: "error level", logLevel: "error", wantLevel: slog.LevelError},
		{name: "mixed case", logLevel: "DeBuG", wantLevel: slog.LevelDebug},
		{name: "invalid falls back to info", logLevel: "verbose", wantLevel: slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger := Setup(config.ServerConfig{Port: 8080, LogLevel: tc.logLevel})

			require.NotNil(t, logger)
			assert.True(t, logger.Enabled(context.Background(), tc.wantLevel))
			if tc.wantLevel > slog.LevelDebug {
				assert.False(t, logger.Enabled(context.Background(), tc.wantLevel-1))
			}
			assert.Same(t, logger, slog.Default())
		})
	}
}

func TestWithLoggerAndFromContext(t *testing.T) {
	t.Parallel()

	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := WithLogger(context.Background(), custom)

	assert.Same(t, custom, FromContext(ctx))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	t.Parallel()

	got := FromContext(context.Background())
	assert.Same(t, slog.Default(), got)
}
