// Package logging configures the process-wide structured logger.
// Diagnostics go to stderr; stdout is reserved for documents and the
// MCP stdio transport.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Setup builds the process logger and installs it as the slog default.
// With verbose, debug records are emitted. With mirror, records are
// additionally written to a timestamped file under the system temp
// directory. The returned func closes the mirror file; it is safe to
// call even when no mirror was opened.
func Setup(verbose, mirror bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	cleanup := func() {}
	if mirror {
		path := filepath.Join(os.TempDir(),
			"gitprompts-"+time.Now().Format("20060102150405")+".log")
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
		}
		w = io.MultiWriter(os.Stderr, file)
		cleanup = func() { _ = file.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, cleanup, nil
}

// SetupWriter builds a logger for an explicit writer. Used by tests
// and by callers that manage their own sinks.
func SetupWriter(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
