// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newRedactCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "redact [file]",
		Short: "Replace secret values in text with their placeholders",
		Long: `Copy a file, or standard input, to standard output with the value of every
variable marked filter_from_requests replaced by <NAME>.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := a.session(); err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 1 {
				// #nosec G304 - the operator chooses the file to redact
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}

			out := cmd.OutOrStdout()
			br := bufio.NewReader(in)
			for {
				line, err := br.ReadString('\n')
				if line != "" {
					if _, werr := io.WriteString(out, a.filter.Apply(line)); werr != nil {
						return werr
					}
				}
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
			}
		},
	}
}
