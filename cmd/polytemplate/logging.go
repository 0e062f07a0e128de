package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// newLogHandler writes text logs to stderr and, with a log file, also JSON
// logs to that file. The returned closer releases the file.
func newLogHandler(cfg cliConfig, stderr io.Writer) (slog.Handler, func() error, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	opts := &slog.HandlerOptions{Level: level}
	text := slog.NewTextHandler(stderr, opts)

	if cfg.LogFile == "" {
		return text, func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	handler := slogmulti.Fanout(text, slog.NewJSONHandler(f, opts))
	return handler, f.Close, nil
}
