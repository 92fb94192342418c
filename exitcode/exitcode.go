// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package exitcode

import (
	"errors"
)

// Process exit codes used by the nvar command.
const (
	// OK is returned when the command succeeded.
	OK = 0
	// Failure is the code for errors that carry no code of their own.
	Failure = 1
	// Missing is returned when required variables are unset or blank.
	Missing = 2
	// Invalid is returned when the manifest or a value cannot be interpreted.
	Invalid = 3
)

// CodedError wraps an error with the exit code the process should end with.
type CodedError struct {
	err  error
	code int
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	return e.err.Error()
}

// Unwrap returns the underlying error for errors.Is() and errors.As() compatibility.
func (e *CodedError) Unwrap() error {
	return e.err
}

// ExitCode returns the exit code associated with this error.
func (e *CodedError) ExitCode() int {
	return e.code
}

// WithCode wraps an error with an exit code. If err is nil, WithCode
// returns nil.
func WithCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &CodedError{err: err, code: code}
}

// Code extracts the exit code from an error chain. It returns [OK] for a
// nil error and [Failure] when no CodedError is found.
func Code(err error) int {
	if err == nil {
		return OK
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.code
	}

	return Failure
}

// New creates a new error with the given message and exit code.
func New(message string, code int) error {
	return &CodedError{err: errors.New(message), code: code}
}
