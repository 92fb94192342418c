// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package redact

import (
	"context"
	"log/slog"
)

// Handler is slog middleware that applies a Filter to the message and to
// every string attribute before passing the record on.
type Handler struct {
	next   slog.Handler
	filter *Filter
}

// NewHandler wraps next.
func NewHandler(next slog.Handler, filter *Filter) *Handler {
	return &Handler{next: next, filter: filter}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, h.filter.Apply(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.scrub(a))
		return true
	})
	return h.next.Handle(ctx, out)
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	scrubbed := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		scrubbed = append(scrubbed, h.scrub(a))
	}
	return &Handler{next: h.next.WithAttrs(scrubbed), filter: h.filter}
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{next: h.next.WithGroup(name), filter: h.filter}
}

func (h *Handler) scrub(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()
	switch a.Value.Kind() {
	case slog.KindString:
		a.Value = slog.StringValue(h.filter.Apply(a.Value.String()))
	case slog.KindGroup:
		group := a.Value.Group()
		scrubbed := make([]slog.Attr, 0, len(group))
		for _, g := range group {
			scrubbed = append(scrubbed, h.scrub(g))
		}
		a.Value = slog.GroupValue(scrubbed...)
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			a.Value = slog.StringValue(h.filter.Apply(err.Error()))
		}
	}
	return a
}
