package helpers

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	t.Parallel()

	t.Run("nil handler", func(t *testing.T) {
		handler, logger := SetupLogger(nil, "placeholder", "")
		require.NotNil(t, handler)
		require.NotNil(t, logger)
	})

	t.Run("custom handler with group", func(t *testing.T) {
		var buf bytes.Buffer
		custom := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

		handler, logger := SetupLogger(custom, "starlark", "Engine")
		require.Equal(t, custom, handler)

		logger.Debug("compiled", "expression", "1+1")
		require.Contains(t, buf.String(), "Engine.expression=1+1")
	})

	t.Run("custom handler without group", func(t *testing.T) {
		var buf bytes.Buffer
		custom := slog.NewTextHandler(&buf, nil)

		_, logger := SetupLogger(custom, "expr", "")
		logger.Info("ready")
		require.Contains(t, buf.String(), "msg=ready")
	})
}
