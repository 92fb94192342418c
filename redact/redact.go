// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package redact collects substitutions for secret values and applies them
// to text before it is recorded or logged.
package redact

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=redact.go -destination=mocks/mock_registrar.go -package=mocks Registrar

import (
	"encoding/base64"
	"slices"
	"strings"
	"sync"
)

// Registrar receives substitutions. The value callback is evaluated when the
// substitution is applied, not when it is registered.
type Registrar interface {
	RegisterSubstitution(placeholder string, value func() string)
}

// BasicAuthPassword returns the credential an HTTP client sends for Basic
// auth with an empty username and the given password.
func BasicAuthPassword(password string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(":" + password))
	return strings.ReplaceAll(encoded, "\n", "")
}

type substitution struct {
	placeholder string
	value       func() string
}

// Filter is an in-process Registrar that replaces registered secret values
// with their placeholders. It is safe for concurrent use.
type Filter struct {
	mu   sync.RWMutex
	subs []substitution
}

// NewFilter returns an empty Filter.
func NewFilter() *Filter {
	return &Filter{}
}

// RegisterSubstitution implements Registrar.
func (f *Filter) RegisterSubstitution(placeholder string, value func() string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, substitution{placeholder: placeholder, value: value})
}

// Placeholders returns the registered placeholders in registration order.
func (f *Filter) Placeholders() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, 0, len(f.subs))
	for _, s := range f.subs {
		out = append(out, s.placeholder)
	}
	return out
}

// Apply replaces every registered secret in s with its placeholder. Longer
// secrets are replaced first so that a secret containing another is not
// split. Empty values are never substituted.
func (f *Filter) Apply(s string) string {
	if s == "" {
		return s
	}

	f.mu.RLock()
	pairs := make([][2]string, 0, len(f.subs))
	for _, sub := range f.subs {
		v := sub.value()
		if v == "" {
			continue
		}
		pairs = append(pairs, [2]string{v, sub.placeholder})
	}
	f.mu.RUnlock()

	if len(pairs) == 0 {
		return s
	}

	slices.SortStableFunc(pairs, func(a, b [2]string) int {
		return len(b[0]) - len(a[0])
	})
	args := make([]string, 0, len(pairs)*2)
	for _, p := range pairs {
		args = append(args, p[0], p[1])
	}
	return strings.NewReplacer(args...).Replace(s)
}
