// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package env provides an interface-based abstraction for environment variable
access, enabling dependency injection and testing isolation.

# Basic Usage

Use OSReader to read the live process environment:

	reader := &env.OSReader{}
	value, ok := reader.LookupEnv("MY_VAR")

Use MapReader, or Snapshot, to resolve against a fixed set of variables:

	reader := env.MapReader{"MY_VAR": "value"}
	frozen := env.Snapshot()

LookupEnv distinguishes a variable that is set to the empty string from one
that is absent. Resolution of required variables depends on that distinction.

# Testing

The Reader interface allows injecting a mock in tests to avoid relying on
real environment variables. A generated mock is available in the mocks
sub-package:

	ctrl := gomock.NewController(t)
	mock := mocks.NewMockReader(ctrl)
	mock.EXPECT().LookupEnv("MY_VAR").Return("test-value", true)

	result := myFunc(mock)
*/
package env
