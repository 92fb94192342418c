// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stacklok/nvar/redact"
)

type redactingCore struct {
	zapcore.Core
	filter *redact.Filter
}

// NewRedactingCore wraps core so that registered secrets never reach it.
func NewRedactingCore(core zapcore.Core, filter *redact.Filter) zapcore.Core {
	return &redactingCore{Core: core, filter: filter}
}

func (c *redactingCore) With(fields []zapcore.Field) zapcore.Core {
	return &redactingCore{Core: c.Core.With(c.scrub(fields)), filter: c.filter}
}

func (c *redactingCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *redactingCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	ent.Message = c.filter.Apply(ent.Message)
	return c.Core.Write(ent, c.scrub(fields))
}

func (c *redactingCore) scrub(fields []zapcore.Field) []zapcore.Field {
	out := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		switch f.Type {
		case zapcore.StringType:
			f.String = c.filter.Apply(f.String)
		case zapcore.ErrorType:
			if err, ok := f.Interface.(error); ok {
				f = zap.String(f.Key, c.filter.Apply(err.Error()))
			}
		case zapcore.StringerType:
			if s, ok := f.Interface.(interface{ String() string }); ok {
				f = zap.String(f.Key, c.filter.Apply(s.String()))
			}
		}
		out[i] = f
	}
	return out
}
