// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklok/nvar/dotenv"
)

func newTouchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "touch",
		Short: "Create the .env file with its header if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}

			r := dotenv.NewReconciler(cfg.EnvFilePath)
			created, err := r.Touch()
			if err != nil {
				return err
			}
			if created {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", r.Path())
			} else {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", r.Path())
			}
			return err
		},
	}
}
