// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"fmt"
	"io"

	"github.com/stacklok/nvar/config"
	"github.com/stacklok/nvar/dotenv"
	"github.com/stacklok/nvar/manifest"
)

// Verify reports missing variables to w and, when writeToFile is set,
// records them in the configured .env file. It returns true when nothing is
// missing, when running in test mode, or when every missing variable was
// written with a non-blank default.
func (ld *Loader) Verify(m *manifest.Manifest, w io.Writer, writeToFile bool) (bool, error) {
	_, unset := ld.ValidateAll(m)
	if len(unset) == 0 || ld.cfg.Mode == config.ModeTest {
		return true, nil
	}

	if _, err := fmt.Fprintln(w, "Please update .env with values for each environment variable:"); err != nil {
		return false, err
	}

	complete := false
	if writeToFile {
		var err error
		complete, err = ld.Reconciler().Reconcile(unset)
		if err != nil {
			return false, err
		}
	}

	for _, v := range unset {
		if _, err := fmt.Fprintf(w, "- %s\n", v.Name()); err != nil {
			return false, err
		}
	}

	path := m.Source()
	if path == "" {
		path = ld.cfg.ManifestPath
	}
	if _, err := fmt.Fprintf(w, "%s contains information on required environment variables across the app.\n", path); err != nil {
		return false, err
	}

	return writeToFile && complete, nil
}

// Reconciler returns a reconciler for the configured .env file.
func (ld *Loader) Reconciler() *dotenv.Reconciler {
	return dotenv.NewReconciler(ld.cfg.EnvFilePath, dotenv.WithLogger(ld.logger))
}
