// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/stacklok/nvar/exitcode"
)

func newVerifyCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "List missing variables and record them in the .env file",
		Long: `List every variable that is unset or blank and, unless --write=false,
append an assignment for each one to the .env file. Variables with a
declared default are written with that default.

verify succeeds when nothing is missing, in test mode, or when every
missing variable could be written with a non-blank default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ld, m, err := a.session()
			if err != nil {
				return err
			}

			ok, err := ld.Verify(m, cmd.OutOrStdout(), write)
			if err != nil {
				return err
			}
			if !ok {
				return exitcode.New("environment is incomplete", exitcode.Missing)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", true, "append missing variables to the .env file")
	return cmd
}
