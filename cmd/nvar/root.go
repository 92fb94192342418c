// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/nvar/config"
	"github.com/stacklok/nvar/env"
	"github.com/stacklok/nvar/exitcode"
	"github.com/stacklok/nvar/loader"
	"github.com/stacklok/nvar/logger"
	"github.com/stacklok/nvar/logging"
	"github.com/stacklok/nvar/manifest"
	"github.com/stacklok/nvar/recovery"
	"github.com/stacklok/nvar/redact"
	"github.com/stacklok/nvar/resolve"
	"github.com/stacklok/nvar/rules"
)

const (
	envPrefix      = "NVAR"
	configFileName = "nvar/config.yaml"
)

// Viper keys. They match the mapstructure tags of config.Config.
const (
	keyManifest = "manifest"
	keyEnvFile  = "env_file"
	keyEnv      = "env"
	keyDebug    = "debug"

	keyPassthroughVariable = "passthrough_variable"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v       *viper.Viper
	reader  env.Reader
	filter  *redact.Filter
	cfgFile string
}

// IsDebug implements logger.DebugProvider.
func (a *app) IsDebug() bool {
	return a.v.GetBool(keyDebug)
}

func newRootCmd(reader env.Reader) *cobra.Command {
	a := &app{
		v:      viper.New(),
		reader: reader,
		filter: redact.NewFilter(),
	}

	root := &cobra.Command{
		Use:   "nvar",
		Short: "Check an application's environment against its variable manifest",
		Long: `nvar reads the manifest of environment variables an application expects,
resolves each one against the current environment and reports any that are
unset or blank. It can also record missing variables in a .env file so that
operators know what to configure.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/"+configFileName+")")
	flags.String("manifest", config.DefaultManifestPath, "variable manifest (YAML or TOML)")
	flags.String("env-file", config.DefaultEnvFilePath, ".env file to reconcile")
	flags.String("env", "", `execution environment; "test" resolves defaults and placeholders`)
	flags.Bool("debug", false, "enable debug logging")

	for key, flag := range map[string]string{
		keyManifest: "manifest",
		keyEnvFile:  "env-file",
		keyEnv:      "env",
		keyDebug:    "debug",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		newCheckCmd(a),
		newVerifyCmd(a),
		newTouchCmd(a),
		newListCmd(a),
		newRedactCmd(a),
	)
	for _, c := range root.Commands() {
		c.RunE = recovery.Wrap(c.RunE)
	}
	return root
}

// initConfig layers flags over NVAR_* variables over the config file.
func (a *app) initConfig() error {
	a.v.SetDefault(keyPassthroughVariable, config.DefaultPassthroughVariable)
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	path := a.cfgFile
	if path == "" {
		// A missing XDG config file is not an error.
		if found, err := xdg.SearchConfigFile(configFileName); err == nil {
			path = found
		}
	}
	if path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return exitcode.WithCode(fmt.Errorf("failed to read config file: %w", err), exitcode.Invalid)
		}
	}

	logger.Initialize(logger.WithEnv(a.reader), logger.WithDebug(a), logger.WithRedaction(a.filter))
	logger.Debugw("configuration loaded", "file", a.v.ConfigFileUsed())
	return nil
}

// config decodes the layered settings. Without an explicit mode, NVAR_ENV is
// read from the environment the variables are resolved against.
func (a *app) config() (config.Config, error) {
	var cfg config.Config
	if err := a.v.Unmarshal(&cfg); err != nil {
		return cfg, exitcode.WithCode(fmt.Errorf("failed to decode config: %w", err), exitcode.Invalid)
	}
	if mode := a.v.GetString(keyEnv); mode != "" {
		cfg.Mode = config.ParseMode(mode)
	} else {
		cfg.Mode = config.FromEnv(a.reader).Mode
	}
	return cfg.WithDefaults(), nil
}

// session loads the manifest and a loader for it, and registers the
// manifest's secrets with the log filter.
func (a *app) session() (*loader.Loader, *manifest.Manifest, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelInfo
	if a.IsDebug() {
		level = slog.LevelDebug
	}
	ld := loader.New(cfg, a.reader, loader.WithLogger(logging.New(
		logging.WithFormat(logging.FormatText),
		logging.WithLevel(level),
		logging.WithRedaction(a.filter),
	)))

	m, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		return nil, nil, exitcode.WithCode(err, exitcode.Invalid)
	}
	ld.FilterSecrets(m, a.filter)

	logger.Debugw("manifest loaded",
		"path", cfg.ManifestPath, "variables", m.Len(), "digest", m.Digest().String(), "mode", cfg.Mode.String())
	return ld, m, nil
}

// classify attaches exit codes to load failures.
func classify(err error) error {
	var (
		missing    *loader.MissingRequiredVariablesError
		castErr    *resolve.TypeCastError
		violations *loader.RuleViolationsError
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, &missing):
		return exitcode.WithCode(err, exitcode.Missing)
	case errors.As(err, &castErr), errors.As(err, &violations),
		errors.Is(err, rules.ErrExpressionCheck),
		errors.Is(err, rules.ErrEvaluation),
		errors.Is(err, rules.ErrInvalidResult):
		return exitcode.WithCode(err, exitcode.Invalid)
	default:
		return err
	}
}
