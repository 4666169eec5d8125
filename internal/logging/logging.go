// SPDX-License-Identifier: MIT

// Package logging builds the slog loggers used by the mtuq command.
package logging

import (
	"io"
	"log/slog"
)

// New returns a logger writing to w at level, as "text" or "json" records.
// Any other format falls back to text.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
