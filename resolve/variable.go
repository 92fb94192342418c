// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"strings"

	"github.com/stacklok/nvar/manifest"
)

// Source records which precedence branch produced a variable's value.
type Source int

const (
	// SourceAbsent means an optional variable was not in the environment.
	SourceAbsent Source = iota
	// SourceEnvironment means the value came from the ambient environment.
	SourceEnvironment
	// SourceTestDefault means test mode substituted the declared default.
	SourceTestDefault
	// SourceTestPlaceholder means test mode substituted the variable's own name.
	SourceTestPlaceholder
	// SourceDefault means the lookup failed and the declared default was carried.
	SourceDefault
	// SourceMissing means the lookup failed and there was no default.
	SourceMissing
)

var sourceNames = map[Source]string{
	SourceAbsent:          "absent",
	SourceEnvironment:     "environment",
	SourceTestDefault:     "test-default",
	SourceTestPlaceholder: "test-placeholder",
	SourceDefault:         "default",
	SourceMissing:         "missing",
}

// String implements fmt.Stringer.
func (s Source) String() string {
	return sourceNames[s]
}

// Variable is the result of resolving one declaration. It is recomputed on
// every pass and never cached.
type Variable struct {
	Declaration manifest.Declaration
	// Value is the pre-cast string. Meaningful only when Present is true.
	Value string
	// Present is false for the nil marker.
	Present bool
	// Defined is false when a required lookup failed.
	Defined bool
	// Source is the branch that produced Value.
	Source Source
}

// Name returns the declared name.
func (v Variable) Name() string {
	return v.Declaration.Name
}

// Satisfied reports whether the variable meets its constraints. Optional
// variables are satisfied once resolution succeeds, even without a value.
func (v Variable) Satisfied() bool {
	if !v.Defined {
		return false
	}
	if v.Declaration.Required {
		return v.Present && !IsBlank(v.Value)
	}
	return true
}

// HasValue reports whether the variable carries a non-blank value.
func (v Variable) HasValue() bool {
	return v.Present && !IsBlank(v.Value)
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
