// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=env.go -destination=mocks/mock_reader.go -package=mocks Reader

import (
	"os"
	"strings"
)

// Reader defines an interface for environment variable access
type Reader interface {
	Getenv(key string) string
	LookupEnv(key string) (string, bool)
}

// OSReader implements Reader using the standard os package
type OSReader struct{}

// Getenv returns the value of the environment variable named by the key
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}

// LookupEnv returns the value of the environment variable named by the key
// and whether it was present. A variable set to the empty string is present.
func (*OSReader) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapReader implements Reader over a fixed set of variables. It is used to
// resolve against a snapshot instead of the live process environment.
type MapReader map[string]string

// Getenv returns the value stored for key, or the empty string.
func (m MapReader) Getenv(key string) string {
	return m[key]
}

// LookupEnv returns the value stored for key and whether it exists.
func (m MapReader) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Snapshot copies the current process environment into a MapReader.
func Snapshot() MapReader {
	environ := os.Environ()
	m := make(MapReader, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		m[k] = v
	}
	return m
}
