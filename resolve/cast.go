// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Recognised type selectors.
const (
	TypeString   = "String"
	TypeInteger  = "Integer"
	TypeFloat    = "Float"
	TypeBoolean  = "Boolean"
	TypeDuration = "Duration"
	TypeArray    = "Array"
)

// CastFunc converts a resolved string into a typed value.
type CastFunc func(string) (any, error)

var casts = map[string]CastFunc{
	TypeString:   castString,
	TypeInteger:  castInteger,
	TypeFloat:    castFloat,
	TypeBoolean:  castBoolean,
	TypeDuration: castDuration,
	TypeArray:    castArray,
}

// Types returns the recognised type selectors, sorted.
func Types() []string {
	out := make([]string, 0, len(casts))
	for t := range casts {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// KnownType reports whether t has a cast.
func KnownType(t string) bool {
	_, ok := casts[t]
	return ok
}

// Cast applies the declared type to v. A nil value is returned as nil
// without consulting the type.
func Cast(v Variable) (any, error) {
	if !v.Present {
		return nil, nil
	}
	return CastValue(v.Declaration.Name, v.Declaration.Type, v.Value)
}

// CastValue applies the cast registered for typ to value.
func CastValue(name, typ, value string) (any, error) {
	fn, ok := casts[typ]
	if !ok {
		return nil, &TypeCastError{Name: name, Type: typ, Err: fmt.Errorf("%w: %q", ErrUnknownType, typ)}
	}
	out, err := fn(value)
	if err != nil {
		return nil, &TypeCastError{Name: name, Type: typ, Err: withoutValue(err)}
	}
	return out, nil
}

// withoutValue drops the input from a parse error, keeping only the reason.
// strconv reasons (ErrSyntax, ErrRange) stay reachable through errors.Is.
func withoutValue(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return fmt.Errorf("%w: %w", ErrInvalidValue, numErr.Err)
	}
	return ErrInvalidValue
}

func castString(s string) (any, error) {
	return s, nil
}

// castInteger accepts base prefixes (0x, 0o, 0b, leading 0) and underscore
// separators.
func castInteger(s string) (any, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func castFloat(s string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func castBoolean(s string) (any, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return b, nil
}

func castDuration(s string) (any, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return d, nil
}

// castArray splits on commas, trimming entries and dropping empty ones.
func castArray(s string) (any, error) {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out, nil
}
