// Package logger configures the process-wide structured logger. The diary
// is an interactive console application, so logs go to stderr (or a writer
// chosen by the caller) and never interleave with menu output on stdout.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup returns a JSON slog.Logger writing to w.
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// SetupDefault installs a JSON logger as the slog default. Passing nil
// selects stderr.
func SetupDefault(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	slog.SetDefault(Setup(w))
}
