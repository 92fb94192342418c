// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config holds the settings shared by every resolution pass: where
// the manifest and the .env file live, which execution mode is active, and
// which variable carries the passthrough override list.
package config

import (
	"strings"

	"github.com/stacklok/nvar/env"
)

// Default locations and variable names.
const (
	DefaultManifestPath        = "config/environment_variables.yml"
	DefaultEnvFilePath         = ".env"
	DefaultModeVariable        = "NVAR_ENV"
	DefaultPassthroughVariable = "NVAR_PASSTHROUGH"
)

// Mode selects between test resolution and everything else.
type Mode int

const (
	// ModeNormal reads values from the ambient environment.
	ModeNormal Mode = iota
	// ModeTest substitutes defaults or placeholders for variables that are not passthrough.
	ModeTest
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == ModeTest {
		return "test"
	}
	return "normal"
}

// ParseMode maps an environment name to a Mode. Only "test" (case
// insensitive, surrounding whitespace ignored) selects ModeTest.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "test") {
		return ModeTest
	}
	return ModeNormal
}

// Config is built once at startup and passed by value to resolvers,
// loaders and reconcilers.
type Config struct {
	// ManifestPath is the declaration manifest (YAML or TOML).
	ManifestPath string `mapstructure:"manifest" yaml:"manifest"`
	// EnvFilePath is the .env file reconciled by verify.
	EnvFilePath string `mapstructure:"env_file" yaml:"env_file"`
	// Mode is the execution mode.
	Mode Mode `mapstructure:"-" yaml:"-"`
	// PassthroughVariable names the variable holding the comma separated
	// list of declarations that bypass test substitution.
	PassthroughVariable string `mapstructure:"passthrough_variable" yaml:"passthrough_variable"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		ManifestPath:        DefaultManifestPath,
		EnvFilePath:         DefaultEnvFilePath,
		Mode:                ModeNormal,
		PassthroughVariable: DefaultPassthroughVariable,
	}
}

// FromEnv returns the default configuration with the mode taken from
// NVAR_ENV.
func FromEnv(reader env.Reader) Config {
	cfg := Default()
	cfg.Mode = ParseMode(reader.Getenv(DefaultModeVariable))
	return cfg
}

// WithDefaults fills empty fields from Default.
func (c Config) WithDefaults() Config {
	d := Default()
	if c.ManifestPath == "" {
		c.ManifestPath = d.ManifestPath
	}
	if c.EnvFilePath == "" {
		c.EnvFilePath = d.EnvFilePath
	}
	if c.PassthroughVariable == "" {
		c.PassthroughVariable = d.PassthroughVariable
	}
	return c
}
