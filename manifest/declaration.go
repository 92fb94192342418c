// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"
	"strings"
)

// DefaultType is the cast selector used when a declaration omits `type`.
const DefaultType = "String"

// RedactionMode controls whether and how a resolved value is registered with
// the redaction hook.
type RedactionMode int

const (
	// RedactionNone never registers the value.
	RedactionNone RedactionMode = iota
	// RedactionAlways registers the raw value.
	RedactionAlways
	// RedactionBasicAuthPassword registers the value encoded as the password
	// half of an HTTP Basic-Auth credential with an empty username.
	RedactionBasicAuthPassword
)

// Manifest spellings accepted for filter_from_requests.
const (
	redactionKeyNone              = "none"
	redactionKeyAlways            = "always"
	redactionKeyBasicAuthPassword = "alone_as_basic_auth_password"
)

// String implements fmt.Stringer using the manifest spelling.
func (m RedactionMode) String() string {
	switch m {
	case RedactionAlways:
		return redactionKeyAlways
	case RedactionBasicAuthPassword:
		return redactionKeyBasicAuthPassword
	default:
		return redactionKeyNone
	}
}

// ParseRedactionMode maps a filter_from_requests value to a RedactionMode.
// Booleans map to always/none; the empty string means none.
func ParseRedactionMode(s string) (RedactionMode, error) {
	switch strings.TrimSpace(s) {
	case "", "false", redactionKeyNone:
		return RedactionNone, nil
	case "true", redactionKeyAlways:
		return RedactionAlways, nil
	case redactionKeyBasicAuthPassword:
		return RedactionBasicAuthPassword, nil
	default:
		return RedactionNone, fmt.Errorf("%w: %q", ErrInvalidRedactionMode, s)
	}
}

// Declaration describes one expected environment variable. It is a value
// object; use the constructor options to build one outside of parsing.
type Declaration struct {
	// Name is both the environment key and the bound constant name.
	Name string
	// Type selects the cast applied at binding time.
	Type string
	// Required defaults to true.
	Required bool
	// DefaultValue is nil when the manifest has no default.
	DefaultValue *string
	// Passthrough is nil when unset, in which case the process-wide
	// override list decides.
	Passthrough *bool
	// Redaction selects the redaction behaviour.
	Redaction RedactionMode
	// Validate is an optional rule expression evaluated against the value.
	Validate string
	// Description is free text for operators.
	Description string
}

// Option customises a Declaration built with NewDeclaration.
type Option func(*Declaration)

// WithType sets the cast selector.
func WithType(t string) Option {
	return func(d *Declaration) {
		d.Type = t
	}
}

// Optional marks the declaration as not required.
func Optional() Option {
	return func(d *Declaration) {
		d.Required = false
	}
}

// WithDefault sets the default value.
func WithDefault(v string) Option {
	return func(d *Declaration) {
		d.DefaultValue = &v
	}
}

// WithPassthrough sets the explicit passthrough flag.
func WithPassthrough(p bool) Option {
	return func(d *Declaration) {
		d.Passthrough = &p
	}
}

// WithRedaction sets the redaction mode.
func WithRedaction(m RedactionMode) Option {
	return func(d *Declaration) {
		d.Redaction = m
	}
}

// WithRule sets the validation rule expression.
func WithRule(expr string) Option {
	return func(d *Declaration) {
		d.Validate = expr
	}
}

// WithDescription sets the operator-facing description.
func WithDescription(s string) Option {
	return func(d *Declaration) {
		d.Description = s
	}
}

// NewDeclaration returns a required String declaration with the given
// options applied.
func NewDeclaration(name string, opts ...Option) Declaration {
	d := Declaration{
		Name:     name,
		Type:     DefaultType,
		Required: true,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// HasDefault reports whether a default value was declared.
func (d Declaration) HasDefault() bool {
	return d.DefaultValue != nil
}

// Default returns the declared default, or the empty string.
func (d Declaration) Default() string {
	if d.DefaultValue == nil {
		return ""
	}
	return *d.DefaultValue
}
