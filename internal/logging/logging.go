// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package logging builds the zerolog logger used by schemagen commands.
package logging

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Environment variables read when the matching flag is not set.
const (
	EnvLogLevel  = "SCHEMAGEN_LOG_LEVEL"
	EnvLogFormat = "SCHEMAGEN_LOG_FORMAT"
)

// Defaults for level and format.
const (
	DefaultLevel  = "info"
	DefaultFormat = "console"
)

// New returns a logger writing to w. Format "console" gives human-readable
// output, anything else JSON lines. An unknown level falls back to info.
// Writes are serialized so the logger can be shared between goroutines.
func New(w io.Writer, level, format string) zerolog.Logger {
	w = zerolog.SyncWriter(w)
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if strings.EqualFold(format, "console") {
		out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Resolve returns flag when set, otherwise the env value, otherwise def.
func Resolve(flag string, getenv func(string) string, key, def string) string {
	if flag != "" {
		return flag
	}
	if getenv != nil {
		if v := getenv(key); v != "" {
			return v
		}
	}
	return def
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// From returns the logger stored in ctx, or a disabled logger.
func From(ctx context.Context) zerolog.Logger {
	if ctx == nil {
		return zerolog.Nop()
	}
	if l := zerolog.Ctx(ctx); l != nil {
		return *l
	}
	return zerolog.Nop()
}
