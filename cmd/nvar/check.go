// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklok/nvar/loader"
)

func newCheckCmd(a *app) *cobra.Command {
	var placeholders bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve and type check every declared variable",
		Long: `Resolve every variable in the manifest, apply its declared type and
validation rule, and fail if any required variable is unset or blank.

Exit codes: 2 when variables are missing, 3 when the manifest, a value or
a rule is invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ld, m, err := a.session()
			if err != nil {
				return err
			}

			consts := loader.NewConstants()
			if placeholders {
				err = ld.LoadAllWithPlaceholders(m, consts)
			} else {
				_, _, err = ld.LoadAll(m, consts)
			}
			if err != nil {
				return classify(err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d of %d variables resolved (%s mode)\n",
				len(consts.Names()), m.Len(), ld.Config().Mode)
			return err
		},
	}

	cmd.Flags().BoolVar(&placeholders, "placeholders", false,
		"in test mode, bind missing variables to their own names instead of failing")
	return cmd
}
