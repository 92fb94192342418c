// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/stacklok/nvar/redact"
)

// Format represents the log output format.
type Format int

const (
	// FormatJSON produces JSON-formatted log output using [log/slog.JSONHandler].
	FormatJSON Format = iota

	// FormatText produces human-readable key=value output using [log/slog.TextHandler].
	FormatText
)

// config holds the resolved configuration for creating a handler.
type config struct {
	format Format
	level  slog.Leveler
	output io.Writer
	filter *redact.Filter
}

// Option configures the logger created by [New] or [NewHandler].
type Option func(*config)

// WithFormat sets the output format. The default is [FormatJSON].
func WithFormat(f Format) Option {
	return func(c *config) {
		c.format = f
	}
}

// WithLevel sets the minimum log level. The default is [log/slog.LevelInfo].
// Pass a [*log/slog.LevelVar] to change the level at runtime.
func WithLevel(l slog.Leveler) Option {
	return func(c *config) {
		c.level = l
	}
}

// WithOutput sets the destination writer. The default is [os.Stderr].
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithRedaction scrubs every value registered with f from log messages and
// string attributes.
func WithRedaction(f *redact.Filter) Option {
	return func(c *config) {
		c.filter = f
	}
}

// New creates a [*log/slog.Logger] with the package defaults.
func New(opts ...Option) *slog.Logger {
	return slog.New(NewHandler(opts...))
}

// NewHandler creates the [log/slog.Handler] behind [New], for callers that
// wrap it with their own middleware.
func NewHandler(opts ...Option) slog.Handler {
	cfg := &config{
		format: FormatJSON,
		level:  slog.LevelInfo,
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       cfg.level,
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler
	switch cfg.format {
	case FormatText:
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	default:
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	if cfg.filter != nil {
		handler = redact.NewHandler(handler, cfg.filter)
	}
	return handler
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// replaceAttr formats the time attribute to RFC3339.
func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.Format(time.RFC3339))
		}
	}
	return a
}
