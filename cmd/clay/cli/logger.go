// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// LogLevelVariable overrides the default log level. Accepts the slog
// level names (debug, info, warn, error).
const LogLevelVariable = "CLAY_LOG_LEVEL"

// NewCommandLogger creates the structured logger for CLI commands.
// When w is a terminal it uses slog.TextHandler for human-readable
// output; when piped or redirected it uses slog.JSONHandler so scripts
// can parse it. verbose lowers the level to debug.
func NewCommandLogger(w io.Writer, verbose bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: logLevel(verbose)}
	if IsTerminal(w) {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	var level slog.Level
	if value := strings.TrimSpace(os.Getenv(LogLevelVariable)); value != "" {
		if err := level.UnmarshalText([]byte(value)); err == nil {
			return level
		}
	}
	return slog.LevelInfo
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w any) bool {
	file, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(file.Fd()))
}
