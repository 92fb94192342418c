// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned when a declaration names a type that has no cast.
	ErrUnknownType = errors.New("unknown variable type")

	// ErrInvalidValue is returned when a value cannot be read as its declared
	// type. Wrapping errors never include the value.
	ErrInvalidValue = errors.New("invalid value")

	// ErrMissingVariable is returned when a required variable has no usable value.
	ErrMissingVariable = errors.New("required variable is unset or blank")
)

// TypeCastError reports a value that the declared type cannot interpret, or
// a declared type that does not exist. It is never recovered internally.
// The offending value is left out of the message because it may be a secret.
type TypeCastError struct {
	Name string
	Type string
	Err  error
}

// Error implements the error interface.
func (e *TypeCastError) Error() string {
	return fmt.Sprintf("cannot cast %s to %s: %v", e.Name, e.Type, e.Err)
}

// Unwrap returns the underlying error.
func (e *TypeCastError) Unwrap() error {
	return e.Err
}

// MissingVariableError reports a single required variable that could not be
// resolved. It surfaces when a variable is bound without going through
// aggregated validation.
type MissingVariableError struct {
	Name string
}

// Error implements the error interface.
func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("required variable %s is unset or blank", e.Name)
}

// Unwrap returns ErrMissingVariable.
func (*MissingVariableError) Unwrap() error {
	return ErrMissingVariable
}
