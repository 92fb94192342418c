// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package exitcode lets errors carry the process exit code they should end
with, so that commands can fail deep in the call stack and main can exit
with the right status.

	err := exitcode.WithCode(err, exitcode.Missing)

	// in main
	os.Exit(exitcode.Code(err))

Code returns [OK] for a nil error and [Failure] for errors without a code.
CodedError supports errors.Is and errors.As through Unwrap.
*/
package exitcode
