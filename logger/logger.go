// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package logger provides the process-wide zap logger used by the nvar
// command line.
package logger

import (
	"strconv"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stacklok/nvar/env"
	"github.com/stacklok/nvar/redact"
)

// UnstructuredLogsVariable selects console output when true or unset.
const UnstructuredLogsVariable = "UNSTRUCTURED_LOGS"

// Debugw logs a message at debug level using the singleton logger with additional key-value pairs.
func Debugw(msg string, keysAndValues ...any) {
	zap.S().Debugw(msg, keysAndValues...)
}

// Infow logs a message at info level using the singleton logger with additional key-value pairs.
func Infow(msg string, keysAndValues ...any) {
	zap.S().Infow(msg, keysAndValues...)
}

// Warnw logs a message at warning level using the singleton logger with additional key-value pairs.
func Warnw(msg string, keysAndValues ...any) {
	zap.S().Warnw(msg, keysAndValues...)
}

// Errorw logs a message at error level using the singleton logger with additional key-value pairs.
func Errorw(msg string, keysAndValues ...any) {
	zap.S().Errorw(msg, keysAndValues...)
}

// Sync flushes the singleton logger.
func Sync() {
	_ = zap.L().Sync()
}

// DebugProvider reports whether debug logging is enabled. The command line
// plugs in its viper-backed flag.
type DebugProvider interface {
	IsDebug() bool
}

type staticDebug bool

func (s staticDebug) IsDebug() bool {
	return bool(s)
}

type options struct {
	reader env.Reader
	debug  DebugProvider
	filter *redact.Filter
}

// Option configures [New] and [Initialize].
type Option func(*options)

// WithEnv sets the reader consulted for UNSTRUCTURED_LOGS.
func WithEnv(r env.Reader) Option {
	return func(o *options) {
		o.reader = r
	}
}

// WithDebug sets the debug provider.
func WithDebug(p DebugProvider) Option {
	return func(o *options) {
		o.debug = p
	}
}

// WithRedaction scrubs registered secrets from messages and string fields.
func WithRedaction(f *redact.Filter) Option {
	return func(o *options) {
		o.filter = f
	}
}

// New builds a logger without installing it. Output goes to stderr so that
// command output on stdout stays machine readable.
func New(opts ...Option) (*zap.Logger, error) {
	o := &options{
		reader: &env.OSReader{},
		debug:  staticDebug(false),
	}
	for _, opt := range opts {
		opt(o)
	}

	var config zap.Config
	if unstructuredLogsWithEnv(o.reader) {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.Kitchen)
		config.DisableStacktrace = true
		config.DisableCaller = true
	} else {
		config = zap.NewProductionConfig()
	}
	config.OutputPaths = []string{"stderr"}

	if o.debug.IsDebug() {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	var buildOpts []zap.Option
	if o.filter != nil {
		filter := o.filter
		buildOpts = append(buildOpts, zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return NewRedactingCore(c, filter)
		}))
	}
	return config.Build(buildOpts...)
}

// Initialize builds a logger and installs it as the zap singleton.
func Initialize(opts ...Option) {
	zap.ReplaceGlobals(zap.Must(New(opts...)))
}

func unstructuredLogsWithEnv(envReader env.Reader) bool {
	unstructuredLogs, err := strconv.ParseBool(envReader.Getenv(UnstructuredLogsVariable))
	if err != nil {
		// unset or unparsable: default to console output
		return true
	}
	return unstructuredLogs
}
