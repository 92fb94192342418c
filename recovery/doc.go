// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package recovery turns panics in command handlers into errors.
//
// A panic inside a command would otherwise skip the deferred logger flush
// and exit with Go's default status. Wrapping the handler reports it as a
// [*PanicError] and exits through the usual error path.
//
// # Basic Usage
//
//	cmd.RunE = recovery.Wrap(cmd.RunE)
package recovery
