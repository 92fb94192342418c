// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/nvar/resolve"
)

type listOutput struct {
	Manifest  string      `yaml:"manifest"`
	Digest    string      `yaml:"digest,omitempty"`
	Mode      string      `yaml:"mode"`
	Variables []listEntry `yaml:"variables"`
}

// listEntry describes a variable without its value, which may be a secret.
type listEntry struct {
	Name        string  `yaml:"name"`
	Type        string  `yaml:"type"`
	Required    bool    `yaml:"required"`
	Default     *string `yaml:"default_value,omitempty"`
	Passthrough bool    `yaml:"passthrough"`
	Redaction   string  `yaml:"filter_from_requests"`
	Validate    string  `yaml:"validate,omitempty"`
	Description string  `yaml:"description,omitempty"`
	Satisfied   bool    `yaml:"satisfied"`
	Source      string  `yaml:"source"`
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the declared variables and how each one resolves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ld, m, err := a.session()
			if err != nil {
				return err
			}

			cfg := ld.Config()
			r := resolve.New(cfg, a.reader)
			out := listOutput{
				Manifest:  cfg.ManifestPath,
				Digest:    m.Digest().String(),
				Mode:      cfg.Mode.String(),
				Variables: make([]listEntry, 0, m.Len()),
			}
			for _, v := range r.ResolveAll(m.Declarations()) {
				d := v.Declaration
				out.Variables = append(out.Variables, listEntry{
					Name:        d.Name,
					Type:        d.Type,
					Required:    d.Required,
					Default:     d.DefaultValue,
					Passthrough: r.Passthrough(d),
					Redaction:   d.Redaction.String(),
					Validate:    d.Validate,
					Description: d.Description,
					Satisfied:   v.Satisfied(),
					Source:      v.Source.String(),
				})
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
