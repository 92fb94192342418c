// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package recovery

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/stacklok/nvar/exitcode"
	"github.com/stacklok/nvar/logger"
)

// ErrPanic is matched by every recovered panic.
var ErrPanic = errors.New("internal error")

// PanicError carries a recovered panic value and the stack it was raised on.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("%v: %v", ErrPanic, e.Value)
}

// Unwrap returns ErrPanic.
func (*PanicError) Unwrap() error {
	return ErrPanic
}

// Do runs fn and converts a panic into a *PanicError with exit code
// exitcode.Failure.
func Do(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			logger.Errorw("recovered from panic", "panic", fmt.Sprint(r), "stack", string(stack))
			err = exitcode.WithCode(&PanicError{Value: r, Stack: stack}, exitcode.Failure)
		}
	}()
	return fn()
}

// Wrap returns a cobra handler that runs run under Do. A nil run is
// returned unchanged.
func Wrap(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	if run == nil {
		return nil
	}
	return func(cmd *cobra.Command, args []string) error {
		return Do(func() error { return run(cmd, args) })
	}
}
