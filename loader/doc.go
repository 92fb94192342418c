// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package loader validates a manifest against the environment and binds the
typed values of its variables.

	m, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		return err
	}
	ld := loader.New(cfg, &env.OSReader{})
	consts := loader.NewConstants()
	if _, _, err := ld.LoadAll(m, consts); err != nil {
		return err
	}
	port := consts.Get("PORT").(int64)

Every satisfied variable is bound before missing ones are reported, so a
host that tolerates the error still sees the values that did resolve.
Missing variables are reported together in a [MissingRequiredVariablesError].

Hosts that want test runs to proceed without a complete environment call
[Loader.LoadAllWithPlaceholders], which binds each missing variable's name
as its value when the configured mode is test.
*/
package loader
