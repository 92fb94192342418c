// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package resolve computes the runtime value of declared environment
// variables under the execution mode's precedence rules.
//
// In test mode a variable that is not passthrough never reads the ambient
// environment: it takes its declared default or, failing that, its own
// name. The name placeholder keeps test suites independent of the
// developer's shell, at the cost of hiding a genuinely missing default.
package resolve

import (
	"strings"

	"github.com/stacklok/nvar/config"
	"github.com/stacklok/nvar/env"
	"github.com/stacklok/nvar/manifest"
)

// Resolver resolves declarations against one environment snapshot. Build a
// new Resolver for every pass so that passthrough overrides and environment
// changes are observed.
type Resolver struct {
	reader      env.Reader
	mode        config.Mode
	passthrough map[string]struct{}
}

// New creates a Resolver. The passthrough override list is read from the
// environment once, here.
func New(cfg config.Config, reader env.Reader) *Resolver {
	cfg = cfg.WithDefaults()
	return &Resolver{
		reader:      reader,
		mode:        cfg.Mode,
		passthrough: ParsePassthroughList(reader.Getenv(cfg.PassthroughVariable)),
	}
}

// ParsePassthroughList splits a comma separated override value into a set
// of names. Blank entries are ignored.
func ParsePassthroughList(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out[part] = struct{}{}
	}
	return out
}

// Mode returns the execution mode the resolver was built for.
func (r *Resolver) Mode() config.Mode {
	return r.mode
}

// Passthrough reports whether d may read the ambient environment in test
// mode. An explicit declaration flag wins over the override list.
func (r *Resolver) Passthrough(d manifest.Declaration) bool {
	if d.Passthrough != nil {
		return *d.Passthrough
	}
	_, ok := r.passthrough[d.Name]
	return ok
}

// Resolve computes the value of a single declaration.
func (r *Resolver) Resolve(d manifest.Declaration) Variable {
	v := Variable{Declaration: d}

	if r.mode == config.ModeTest && !r.Passthrough(d) {
		v.Present, v.Defined = true, true
		if d.HasDefault() {
			v.Value, v.Source = d.Default(), SourceTestDefault
		} else {
			v.Value, v.Source = d.Name, SourceTestPlaceholder
		}
		return v
	}

	value, ok := r.reader.LookupEnv(d.Name)
	switch {
	case ok:
		v.Value, v.Present, v.Defined, v.Source = value, true, true, SourceEnvironment
	case d.Required:
		// A failed required lookup keeps the declared default (possibly nil).
		v.Defined = false
		v.Source = SourceMissing
		if d.HasDefault() {
			v.Value, v.Present, v.Source = d.Default(), true, SourceDefault
		}
	default:
		v.Defined, v.Source = true, SourceAbsent
	}
	return v
}

// ResolveAll resolves declarations in order.
func (r *Resolver) ResolveAll(decls []manifest.Declaration) []Variable {
	out := make([]Variable, 0, len(decls))
	for _, d := range decls {
		out = append(out, r.Resolve(d))
	}
	return out
}
