// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
)

// Sentinel errors for rule operations.
var (
	// ErrExpressionCheck is returned when a rule fails syntax or type checking.
	ErrExpressionCheck = errors.New("rule expression check failed")

	// ErrEvaluation is returned when rule evaluation fails.
	ErrEvaluation = errors.New("rule evaluation failed")

	// ErrInvalidResult is returned when a rule does not produce a boolean.
	ErrInvalidResult = errors.New("rule returned a non-boolean result")
)

// Issue is one located problem in a rule expression.
type Issue struct {
	Line int
	Col  int
	Msg  string
}

// String formats the issue as line:col: message.
func (i Issue) String() string {
	return fmt.Sprintf("%d:%d: %s", i.Line, i.Col, i.Msg)
}

func issuesFrom(issues *cel.Issues) []Issue {
	out := make([]Issue, 0, len(issues.Errors()))
	for _, err := range issues.Errors() {
		out = append(out, Issue{
			Line: err.Location.Line(),
			Col:  err.Location.Column(),
			Msg:  err.Message,
		})
	}
	return out
}

func joinIssues(issues []Issue) string {
	parts := make([]string, 0, len(issues))
	for _, i := range issues {
		parts = append(parts, i.String())
	}
	return strings.Join(parts, "; ")
}

// ParseError is a syntax error in a rule.
type ParseError struct {
	Source string
	Issues []Issue
}

// Error implements the error interface.
func (pe *ParseError) Error() string {
	return fmt.Sprintf("syntax error in rule %q: %s", pe.Source, joinIssues(pe.Issues))
}

// Unwrap returns ErrExpressionCheck.
func (*ParseError) Unwrap() error {
	return ErrExpressionCheck
}

// CheckError is a type checking error in a rule, such as an undeclared
// variable or a comparison between incompatible types.
type CheckError struct {
	Source string
	Issues []Issue
}

// Error implements the error interface.
func (ce *CheckError) Error() string {
	return fmt.Sprintf("type error in rule %q: %s", ce.Source, joinIssues(ce.Issues))
}

// Unwrap returns ErrExpressionCheck.
func (*CheckError) Unwrap() error {
	return ErrExpressionCheck
}
