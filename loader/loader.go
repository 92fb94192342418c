// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/stacklok/nvar/config"
	"github.com/stacklok/nvar/env"
	"github.com/stacklok/nvar/logging"
	"github.com/stacklok/nvar/manifest"
	"github.com/stacklok/nvar/resolve"
	"github.com/stacklok/nvar/rules"
)

// Loader validates and binds the variables of a manifest. Every call
// resolves afresh; nothing is cached between passes.
type Loader struct {
	cfg    config.Config
	reader env.Reader
	logger *slog.Logger
	engine *rules.Engine
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger. The default is [logging.New].
func WithLogger(l *slog.Logger) Option {
	return func(ld *Loader) {
		ld.logger = l
	}
}

// WithRulesEngine sets the engine used to compile validation rules.
func WithRulesEngine(e *rules.Engine) Option {
	return func(ld *Loader) {
		ld.engine = e
	}
}

// New creates a Loader reading variables through reader.
func New(cfg config.Config, reader env.Reader, opts ...Option) *Loader {
	ld := &Loader{
		cfg:    cfg.WithDefaults(),
		reader: reader,
	}
	for _, opt := range opts {
		opt(ld)
	}
	if ld.logger == nil {
		ld.logger = logging.New()
	}
	if ld.engine == nil {
		ld.engine = rules.NewEngine()
	}
	return ld
}

// Config returns the effective configuration.
func (ld *Loader) Config() config.Config {
	return ld.cfg
}

// ValidateAll resolves every declaration and partitions the results into
// satisfied and unsatisfied variables, both in declaration order.
func (ld *Loader) ValidateAll(m *manifest.Manifest) (set, unset []resolve.Variable) {
	r := resolve.New(ld.cfg, ld.reader)
	for _, v := range r.ResolveAll(m.Declarations()) {
		if v.Satisfied() {
			set = append(set, v)
		} else {
			unset = append(unset, v)
		}
	}
	ld.logger.Debug("validated variables",
		"mode", ld.cfg.Mode.String(), "set", len(set), "unset", len(unset))
	return set, unset
}

// CheckDeclarations type checks every validation rule in m, whatever the
// mode or source of the value. Unknown types are logged, not rejected: a
// variable without a value is never cast.
func (ld *Loader) CheckDeclarations(m *manifest.Manifest) error {
	for _, d := range m.Declarations() {
		if !resolve.KnownType(d.Type) {
			ld.logger.Warn("variable declares an unknown type",
				"name", d.Name, "type", d.Type, "known", resolve.Types())
		}
		if d.Validate == "" {
			continue
		}
		if err := ld.engine.Check(d.Validate); err != nil {
			return fmt.Errorf("invalid rule for %s: %w", d.Name, err)
		}
	}
	return nil
}

// LoadAll checks the manifest's rules, binds every satisfied variable, then
// fails with a *MissingRequiredVariablesError if any variable is
// unsatisfied. A cast or bind failure aborts the pass at once. Once nothing is missing, the rules
// of variables read from the environment are evaluated and failures are
// reported together in a *RuleViolationsError.
func (ld *Loader) LoadAll(m *manifest.Manifest, binder Binder) (set, unset []resolve.Variable, err error) {
	if err := ld.CheckDeclarations(m); err != nil {
		return nil, nil, err
	}
	set, unset = ld.ValidateAll(m)

	typed := make([]any, len(set))
	for i, v := range set {
		value, err := resolve.Cast(v)
		if err != nil {
			return set, unset, err
		}
		if err := binder.Bind(v.Name(), value); err != nil {
			return set, unset, fmt.Errorf("binding %s: %w", v.Name(), err)
		}
		typed[i] = value
	}

	if len(unset) > 0 {
		names := make([]string, 0, len(unset))
		for _, v := range unset {
			names = append(names, v.Name())
		}
		return set, unset, &MissingRequiredVariablesError{Names: names}
	}

	if err := ld.checkRules(set, typed); err != nil {
		return set, unset, err
	}
	return set, unset, nil
}

func (ld *Loader) checkRules(set []resolve.Variable, typed []any) error {
	var violations []RuleViolation
	for i, v := range set {
		expr := v.Declaration.Validate
		if expr == "" || v.Source != resolve.SourceEnvironment {
			continue
		}
		rule, err := ld.engine.Compile(expr)
		if err != nil {
			return fmt.Errorf("compiling rule for %s: %w", v.Name(), err)
		}
		ok, err := rule.Evaluate(v.Name(), v.Value, typed[i])
		if err != nil {
			return fmt.Errorf("evaluating rule for %s: %w", v.Name(), err)
		}
		if !ok {
			violations = append(violations, RuleViolation{Name: v.Name(), Rule: expr})
		}
	}
	if len(violations) > 0 {
		return &RuleViolationsError{Violations: violations}
	}
	return nil
}

// LoadAllWithPlaceholders runs LoadAll and, in test mode only, recovers
// from missing variables by binding each one's name as its value. Any
// other failure, and every failure in normal mode, is returned.
func (ld *Loader) LoadAllWithPlaceholders(m *manifest.Manifest, binder Binder) error {
	_, unset, err := ld.LoadAll(m, binder)
	if err == nil {
		return nil
	}

	var missing *MissingRequiredVariablesError
	if ld.cfg.Mode != config.ModeTest || !errors.As(err, &missing) {
		return err
	}

	ld.logger.Warn("binding placeholders for missing variables", "names", missing.Names)
	for _, v := range unset {
		if err := binder.Bind(v.Name(), v.Name()); err != nil {
			return fmt.Errorf("binding placeholder %s: %w", v.Name(), err)
		}
	}
	return nil
}

// Bind casts and binds a single variable. An undefined variable yields a
// *resolve.MissingVariableError.
func (*Loader) Bind(binder Binder, v resolve.Variable) error {
	if !v.Defined {
		return &resolve.MissingVariableError{Name: v.Name()}
	}
	value, err := resolve.Cast(v)
	if err != nil {
		return err
	}
	if err := binder.Bind(v.Name(), value); err != nil {
		return fmt.Errorf("binding %s: %w", v.Name(), err)
	}
	return nil
}
