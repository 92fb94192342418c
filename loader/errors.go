// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stacklok/nvar/resolve"
)

// ErrRuleViolation is returned when a variable's value fails its rule.
var ErrRuleViolation = errors.New("variable failed validation rule")

// MissingRequiredVariablesError aggregates every unsatisfied variable of a
// load pass. Names are in declaration order.
type MissingRequiredVariablesError struct {
	Names []string
}

// Error implements the error interface.
func (e *MissingRequiredVariablesError) Error() string {
	return "the following variables are unset or blank: " + strings.Join(e.Names, ", ")
}

// Unwrap returns resolve.ErrMissingVariable.
func (*MissingRequiredVariablesError) Unwrap() error {
	return resolve.ErrMissingVariable
}

// RuleViolation is a single failed rule.
type RuleViolation struct {
	Name string
	Rule string
}

// RuleViolationsError aggregates the rule failures of a load pass.
type RuleViolationsError struct {
	Violations []RuleViolation
}

// Error implements the error interface.
func (e *RuleViolationsError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s (%s)", v.Name, v.Rule))
	}
	return "the following variables failed validation: " + strings.Join(parts, ", ")
}

// Unwrap returns ErrRuleViolation.
func (*RuleViolationsError) Unwrap() error {
	return ErrRuleViolation
}
