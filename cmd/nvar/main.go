// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package main provides the nvar command line for checking an application's
// environment against its variable manifest.
package main

import (
	"fmt"
	"os"

	"github.com/stacklok/nvar/env"
	"github.com/stacklok/nvar/exitcode"
	"github.com/stacklok/nvar/logger"
)

func main() {
	cmd := newRootCmd(env.Snapshot())
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	logger.Sync()
	os.Exit(exitcode.Code(err))
}
