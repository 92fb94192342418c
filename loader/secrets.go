// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"github.com/stacklok/nvar/manifest"
	"github.com/stacklok/nvar/redact"
)

// FilterSecrets registers a "<NAME>" placeholder with registrar for every
// satisfied variable whose declaration asks for redaction and which carries
// a value. Call it before recording anything that may contain those values.
// It returns the number of substitutions registered.
func (ld *Loader) FilterSecrets(m *manifest.Manifest, registrar redact.Registrar) int {
	set, _ := ld.ValidateAll(m)

	registered := 0
	for _, v := range set {
		if !v.Present {
			continue
		}
		value := v.Value
		placeholder := "<" + v.Name() + ">"

		switch v.Declaration.Redaction {
		case manifest.RedactionAlways:
			registrar.RegisterSubstitution(placeholder, func() string { return value })
		case manifest.RedactionBasicAuthPassword:
			registrar.RegisterSubstitution(placeholder, func() string { return redact.BasicAuthPassword(value) })
		default:
			continue
		}
		registered++
	}
	ld.logger.Debug("registered secret substitutions", "count", registered)
	return registered
}
