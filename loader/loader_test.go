// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/nvar/config"
	"github.com/stacklok/nvar/env"
	"github.com/stacklok/nvar/loader/mocks"
	"github.com/stacklok/nvar/logging"
	"github.com/stacklok/nvar/manifest"
	"github.com/stacklok/nvar/resolve"
	"github.com/stacklok/nvar/rules"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func mustManifest(t *testing.T, decls ...manifest.Declaration) *manifest.Manifest {
	t.Helper()
	m, err := manifest.New(decls...)
	require.NoError(t, err)
	return m
}

func newTestLoader(mode config.Mode, vars env.MapReader) *Loader {
	cfg := config.Default()
	cfg.Mode = mode
	return New(cfg, vars, WithLogger(logging.Discard()))
}

func names(vars []resolve.Variable) []string {
	out := make([]string, 0, len(vars))
	for _, v := range vars {
		out = append(out, v.Name())
	}
	return out
}

func TestLoadAll_AggregatesMissing(t *testing.T) {
	t.Parallel()

	m := mustManifest(t,
		manifest.NewDeclaration("A"),
		manifest.NewDeclaration("B", manifest.WithDefault("d")),
		manifest.NewDeclaration("C", manifest.Optional()),
	)
	ld := newTestLoader(config.ModeNormal, env.MapReader{"B": ""})
	consts := NewConstants()

	set, unset, err := ld.LoadAll(m, consts)

	var missing *MissingRequiredVariablesError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"A", "B"}, missing.Names)
	assert.EqualError(t, err, "the following variables are unset or blank: A, B")
	assert.ErrorIs(t, err, resolve.ErrMissingVariable)

	assert.Equal(t, []string{"C"}, names(set))
	assert.Equal(t, []string{"A", "B"}, names(unset))

	v, ok := consts.Lookup("C")
	assert.True(t, ok, "satisfied variables are bound before the error")
	assert.Nil(t, v)
	_, ok = consts.Lookup("A")
	assert.False(t, ok)
}

func TestLoadAll_BindsTypedValuesInOrder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	binder := mocks.NewMockBinder(ctrl)
	gomock.InOrder(
		binder.EXPECT().Bind("PORT", int64(8080)).Return(nil),
		binder.EXPECT().Bind("DEBUG", true).Return(nil),
		binder.EXPECT().Bind("HOST", "example.com").Return(nil),
	)

	m := mustManifest(t,
		manifest.NewDeclaration("PORT", manifest.WithType(resolve.TypeInteger)),
		manifest.NewDeclaration("DEBUG", manifest.WithType(resolve.TypeBoolean)),
		manifest.NewDeclaration("HOST"),
	)
	ld := newTestLoader(config.ModeNormal, env.MapReader{"PORT": "8080", "DEBUG": "true", "HOST": "example.com"})

	set, unset, err := ld.LoadAll(m, binder)
	require.NoError(t, err)
	assert.Len(t, set, 3)
	assert.Empty(t, unset)
}

func TestLoadAll_CastFailureAborts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	binder := mocks.NewMockBinder(ctrl)
	binder.EXPECT().Bind("FIRST", "ok").Return(nil)

	m := mustManifest(t,
		manifest.NewDeclaration("FIRST"),
		manifest.NewDeclaration("PORT", manifest.WithType(resolve.TypeInteger)),
		manifest.NewDeclaration("LAST"),
		manifest.NewDeclaration("MISSING"),
	)
	ld := newTestLoader(config.ModeNormal, env.MapReader{"FIRST": "ok", "PORT": "eighty", "LAST": "x"})

	_, _, err := ld.LoadAll(m, binder)

	var castErr *resolve.TypeCastError
	require.ErrorAs(t, err, &castErr)
	assert.Equal(t, "PORT", castErr.Name)
	assert.NotContains(t, err.Error(), "eighty")
}

func TestLoadAll_UnknownType(t *testing.T) {
	t.Parallel()

	m := mustManifest(t, manifest.NewDeclaration("X", manifest.WithType("Symbol")))
	ld := newTestLoader(config.ModeNormal, env.MapReader{"X": "x"})

	_, _, err := ld.LoadAll(m, NewConstants())
	assert.ErrorIs(t, err, resolve.ErrUnknownType)
}

func TestLoadAll_BinderError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	binder := mocks.NewMockBinder(ctrl)
	boom := errors.New("boom")
	binder.EXPECT().Bind("A", "a").Return(boom)

	m := mustManifest(t, manifest.NewDeclaration("A"), manifest.NewDeclaration("B"))
	ld := newTestLoader(config.ModeNormal, env.MapReader{"A": "a", "B": "b"})

	_, _, err := ld.LoadAll(m, binder)
	assert.ErrorIs(t, err, boom)
}

func TestLoadAll_TestMode(t *testing.T) {
	t.Parallel()

	m := mustManifest(t,
		manifest.NewDeclaration("API_KEY"),
		manifest.NewDeclaration("PORT", manifest.WithType(resolve.TypeInteger), manifest.WithDefault("8")),
		manifest.NewDeclaration("HOME_DIR", manifest.WithPassthrough(true)),
	)
	ld := newTestLoader(config.ModeTest, env.MapReader{"API_KEY": "real", "HOME_DIR": "/home/me"})
	consts := NewConstants()

	_, unset, err := ld.LoadAll(m, consts)
	require.NoError(t, err)
	assert.Empty(t, unset)
	assert.Equal(t, "API_KEY", consts.Get("API_KEY"))
	assert.Equal(t, int64(8), consts.Get("PORT"))
	assert.Equal(t, "/home/me", consts.Get("HOME_DIR"))
}

func TestLoadAll_Rules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mode      config.Mode
		vars      env.MapReader
		violation bool
	}{
		{"environment value passes", config.ModeNormal, env.MapReader{"PORT": "8080"}, false},
		{"environment value fails", config.ModeNormal, env.MapReader{"PORT": "80"}, true},
		{"test default skips rule", config.ModeTest, env.MapReader{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := mustManifest(t, manifest.NewDeclaration("PORT",
				manifest.WithType(resolve.TypeInteger),
				manifest.WithDefault("80"),
				manifest.WithRule("typed > 1024"),
			))
			ld := newTestLoader(tc.mode, tc.vars)

			_, _, err := ld.LoadAll(m, NewConstants())
			if !tc.violation {
				require.NoError(t, err)
				return
			}

			var violations *RuleViolationsError
			require.ErrorAs(t, err, &violations)
			assert.Equal(t, []RuleViolation{{Name: "PORT", Rule: "typed > 1024"}}, violations.Violations)
			assert.ErrorIs(t, err, ErrRuleViolation)
		})
	}
}

func TestLoadAll_InvalidRule(t *testing.T) {
	t.Parallel()

	m := mustManifest(t, manifest.NewDeclaration("A", manifest.WithRule("value.size( >")))
	ld := New(config.Default(), env.MapReader{"A": "a"},
		WithLogger(logging.Discard()), WithRulesEngine(rules.NewEngine()))

	_, _, err := ld.LoadAll(m, NewConstants())
	assert.ErrorIs(t, err, rules.ErrExpressionCheck)
}

func TestLoadAll_InvalidRuleRejectedForEverySource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mode config.Mode
		decl manifest.Declaration
		vars env.MapReader
	}{
		{
			name: "test mode default",
			mode: config.ModeTest,
			decl: manifest.NewDeclaration("PORT", manifest.WithDefault("8"), manifest.WithRule("typed >")),
			vars: env.MapReader{},
		},
		{
			name: "test mode placeholder",
			mode: config.ModeTest,
			decl: manifest.NewDeclaration("HOST", manifest.WithRule("size(value) >> 1")),
			vars: env.MapReader{},
		},
		{
			name: "declared default in normal mode",
			mode: config.ModeNormal,
			decl: manifest.NewDeclaration("PORT", manifest.WithDefault("8"), manifest.WithRule("typed >")),
			vars: env.MapReader{},
		},
		{
			name: "type error in rule",
			mode: config.ModeTest,
			decl: manifest.NewDeclaration("HOST", manifest.WithRule("value + 1")),
			vars: env.MapReader{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			binder := mocks.NewMockBinder(ctrl)

			ld := newTestLoader(tc.mode, tc.vars)
			_, _, err := ld.LoadAll(mustManifest(t, tc.decl), binder)

			require.ErrorIs(t, err, rules.ErrExpressionCheck)
			assert.Contains(t, err.Error(), tc.decl.Name)
		})
	}
}

func TestCheckDeclarations_WarnsOnUnknownType(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ld := New(config.Default(), env.MapReader{},
		WithLogger(logging.New(logging.WithOutput(&buf), logging.WithFormat(logging.FormatText))))

	m := mustManifest(t,
		manifest.NewDeclaration("A", manifest.WithType("Symbol"), manifest.Optional()),
		manifest.NewDeclaration("B", manifest.WithType(resolve.TypeInteger), manifest.Optional()),
	)

	require.NoError(t, ld.CheckDeclarations(m))
	assert.Contains(t, buf.String(), "unknown type")
	assert.Contains(t, buf.String(), "name=A")
	assert.NotContains(t, buf.String(), "name=B")

	// An unset optional variable with an unknown type still loads.
	_, _, err := ld.LoadAll(m, NewConstants())
	assert.NoError(t, err)
}

func TestLoadAll_RulesNotCheckedWhenMissing(t *testing.T) {
	t.Parallel()

	m := mustManifest(t,
		manifest.NewDeclaration("A", manifest.WithRule("size(value) > 10")),
		manifest.NewDeclaration("B"),
	)
	ld := newTestLoader(config.ModeNormal, env.MapReader{"A": "short"})

	_, _, err := ld.LoadAll(m, NewConstants())
	var missing *MissingRequiredVariablesError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"B"}, missing.Names)
}

func TestLoadAllWithPlaceholders(t *testing.T) {
	t.Parallel()

	m := mustManifest(t,
		manifest.NewDeclaration("TOKEN", manifest.WithPassthrough(true)),
		manifest.NewDeclaration("OTHER"),
	)

	t.Run("test mode binds names", func(t *testing.T) {
		t.Parallel()
		consts := NewConstants()
		ld := newTestLoader(config.ModeTest, env.MapReader{})

		require.NoError(t, ld.LoadAllWithPlaceholders(m, consts))
		assert.Equal(t, "TOKEN", consts.Get("TOKEN"))
		assert.Equal(t, "OTHER", consts.Get("OTHER"))
	})

	t.Run("normal mode propagates", func(t *testing.T) {
		t.Parallel()
		ld := newTestLoader(config.ModeNormal, env.MapReader{})

		err := ld.LoadAllWithPlaceholders(m, NewConstants())
		var missing *MissingRequiredVariablesError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"TOKEN", "OTHER"}, missing.Names)
	})

	t.Run("cast errors propagate in test mode", func(t *testing.T) {
		t.Parallel()
		bad := mustManifest(t, manifest.NewDeclaration("N", manifest.WithType(resolve.TypeInteger)))
		ld := newTestLoader(config.ModeTest, env.MapReader{})

		err := ld.LoadAllWithPlaceholders(bad, NewConstants())
		var castErr *resolve.TypeCastError
		assert.ErrorAs(t, err, &castErr)
	})
}

func TestBind(t *testing.T) {
	t.Parallel()

	ld := newTestLoader(config.ModeNormal, env.MapReader{})
	consts := NewConstants()

	undefined := resolve.Variable{Declaration: manifest.NewDeclaration("GONE")}
	err := ld.Bind(consts, undefined)
	var missing *resolve.MissingVariableError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "GONE", missing.Name)

	defined := resolve.Variable{
		Declaration: manifest.NewDeclaration("RATE", manifest.WithType(resolve.TypeFloat)),
		Value:       "0.5",
		Present:     true,
		Defined:     true,
	}
	require.NoError(t, ld.Bind(consts, defined))
	assert.InDelta(t, 0.5, consts.Get("RATE"), 0)
}

func TestValidateAll_ReadsEnvironmentEachPass(t *testing.T) {
	t.Parallel()

	m := mustManifest(t, manifest.NewDeclaration("A"))
	vars := env.MapReader{}
	ld := newTestLoader(config.ModeNormal, vars)

	_, unset := ld.ValidateAll(m)
	assert.Len(t, unset, 1)

	vars["A"] = "now set"
	set, unset := ld.ValidateAll(m)
	assert.Len(t, set, 1)
	assert.Empty(t, unset)
}

func TestConstants(t *testing.T) {
	t.Parallel()

	c := NewConstants()
	require.NoError(t, c.Bind("B", 1))
	require.NoError(t, c.Bind("A", "x"))
	require.NoError(t, c.Bind("B", 2))

	assert.Equal(t, []string{"A", "B"}, c.Names())
	assert.Equal(t, 2, c.Get("B"))
	assert.Nil(t, c.Get("Z"))
}
