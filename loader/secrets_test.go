// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/nvar/config"
	"github.com/stacklok/nvar/env"
	"github.com/stacklok/nvar/manifest"
	"github.com/stacklok/nvar/redact"
	redactmocks "github.com/stacklok/nvar/redact/mocks"
)

func TestFilterSecrets_Registrations(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	registrar := redactmocks.NewMockRegistrar(ctrl)

	got := map[string]string{}
	registrar.EXPECT().RegisterSubstitution(gomock.Any(), gomock.Any()).
		Do(func(placeholder string, value func() string) {
			got[placeholder] = value()
		}).Times(2)

	m := mustManifest(t,
		manifest.NewDeclaration("API_TOKEN", manifest.WithRedaction(manifest.RedactionAlways)),
		manifest.NewDeclaration("PASSWORD", manifest.WithRedaction(manifest.RedactionBasicAuthPassword)),
		manifest.NewDeclaration("PUBLIC_URL"),
		manifest.NewDeclaration("UNSET_SECRET", manifest.WithRedaction(manifest.RedactionAlways)),
		manifest.NewDeclaration("OPTIONAL_SECRET", manifest.Optional(), manifest.WithRedaction(manifest.RedactionAlways)),
	)
	ld := newTestLoader(config.ModeNormal, env.MapReader{
		"API_TOKEN":  "tok",
		"PASSWORD":   "hunter2",
		"PUBLIC_URL": "https://example.com",
	})

	assert.Equal(t, 2, ld.FilterSecrets(m, registrar))
	assert.Equal(t, map[string]string{
		"<API_TOKEN>": "tok",
		"<PASSWORD>":  "Omh1bnRlcjI=",
	}, got)
}

func TestFilterSecrets_WithFilter(t *testing.T) {
	t.Parallel()

	m := mustManifest(t, manifest.NewDeclaration("API_TOKEN", manifest.WithRedaction(manifest.RedactionAlways)))
	ld := newTestLoader(config.ModeNormal, env.MapReader{"API_TOKEN": "s3cr3t"})

	filter := redact.NewFilter()
	ld.FilterSecrets(m, filter)

	assert.Equal(t, "Authorization: <API_TOKEN>", filter.Apply("Authorization: s3cr3t"))
}

func TestFilterSecrets_TestModePlaceholder(t *testing.T) {
	t.Parallel()

	m := mustManifest(t, manifest.NewDeclaration("API_TOKEN", manifest.WithRedaction(manifest.RedactionAlways)))
	ld := newTestLoader(config.ModeTest, env.MapReader{"API_TOKEN": "real"})

	filter := redact.NewFilter()
	ld.FilterSecrets(m, filter)

	assert.Equal(t, []string{"<API_TOKEN>"}, filter.Placeholders())
	assert.Equal(t, "real <API_TOKEN>", filter.Apply("real API_TOKEN"))
}
