// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

const (
	// DefaultMaxExpressionLength bounds the length of a rule.
	DefaultMaxExpressionLength = 4096

	// DefaultCostLimit bounds the runtime cost of evaluating a rule.
	DefaultCostLimit = 100000
)

// Variables visible to every rule.
const (
	VarName  = "name"
	VarValue = "value"
	VarTyped = "typed"
)

// Engine compiles rules. It is safe for concurrent use.
type Engine struct {
	once                sync.Once
	env                 *cel.Env
	envErr              error
	maxExpressionLength int
	costLimit           uint64
}

// NewEngine returns an engine declaring `name` and `value` as strings and
// `typed` as the value after the declared cast.
func NewEngine() *Engine {
	return &Engine{
		maxExpressionLength: DefaultMaxExpressionLength,
		costLimit:           DefaultCostLimit,
	}
}

// WithMaxExpressionLength sets the maximum rule length.
func (e *Engine) WithMaxExpressionLength(maxLen int) *Engine {
	e.maxExpressionLength = maxLen
	return e
}

// WithCostLimit sets the runtime cost limit.
func (e *Engine) WithCostLimit(limit uint64) *Engine {
	e.costLimit = limit
	return e
}

func (e *Engine) getEnv() (*cel.Env, error) {
	e.once.Do(func() {
		e.env, e.envErr = cel.NewEnv(
			cel.Variable(VarName, cel.StringType),
			cel.Variable(VarValue, cel.StringType),
			cel.Variable(VarTyped, cel.DynType),
		)
	})
	return e.env, e.envErr
}

func (e *Engine) check(expr string) (*cel.Env, *cel.Ast, error) {
	if len(expr) > e.maxExpressionLength {
		return nil, nil, fmt.Errorf("%w: expression length %d exceeds maximum of %d",
			ErrExpressionCheck, len(expr), e.maxExpressionLength)
	}

	env, err := e.getEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create rule environment: %w", err)
	}

	parsed, issues := env.Parse(expr)
	if issues.Err() != nil {
		return nil, nil, &ParseError{Source: expr, Issues: issuesFrom(issues)}
	}

	checked, issues := env.Check(parsed)
	if issues.Err() != nil {
		return nil, nil, &CheckError{Source: expr, Issues: issuesFrom(issues)}
	}
	return env, checked, nil
}

// Check validates a rule without building a program.
func (e *Engine) Check(expr string) error {
	_, _, err := e.check(expr)
	return err
}

// Compile parses, type checks and plans a rule.
func (e *Engine) Compile(expr string) (*Rule, error) {
	env, checked, err := e.check(expr)
	if err != nil {
		return nil, err
	}

	program, err := env.Program(checked, cel.CostLimit(e.costLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to plan rule %q: %w", expr, err)
	}
	return &Rule{source: expr, program: program}, nil
}

// Rule is a compiled rule ready for evaluation.
type Rule struct {
	source  string
	program cel.Program
}

// Source returns the rule expression.
func (r *Rule) Source() string {
	return r.source
}

// Evaluate runs the rule for one variable.
func (r *Rule) Evaluate(name, value string, typed any) (bool, error) {
	out, _, err := r.program.Eval(map[string]any{
		VarName:  name,
		VarValue: value,
		VarTyped: typed,
	})
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrEvaluation, err)
	}

	ok, isBool := out.Value().(bool)
	if !isBool {
		return false, fmt.Errorf("%w: got %T", ErrInvalidResult, out.Value())
	}
	return ok, nil
}
