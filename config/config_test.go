// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/nvar/env/mocks"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Mode
	}{
		{"test", ModeTest},
		{"TEST", ModeTest},
		{" test\n", ModeTest},
		{"", ModeNormal},
		{"development", ModeNormal},
		{"production", ModeNormal},
		{"testing", ModeNormal},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseMode(tt.in))
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reader := mocks.NewMockReader(ctrl)
	reader.EXPECT().Getenv(DefaultModeVariable).Return("test")

	cfg := FromEnv(reader)

	assert.Equal(t, ModeTest, cfg.Mode)
	assert.Equal(t, DefaultManifestPath, cfg.ManifestPath)
	assert.Equal(t, DefaultEnvFilePath, cfg.EnvFilePath)
	assert.Equal(t, DefaultPassthroughVariable, cfg.PassthroughVariable)
}

func TestWithDefaults(t *testing.T) {
	t.Parallel()

	cfg := Config{EnvFilePath: "/tmp/app.env", Mode: ModeTest}.WithDefaults()

	assert.Equal(t, "/tmp/app.env", cfg.EnvFilePath)
	assert.Equal(t, DefaultManifestPath, cfg.ManifestPath)
	assert.Equal(t, DefaultPassthroughVariable, cfg.PassthroughVariable)
	assert.Equal(t, ModeTest, cfg.Mode)
}

func TestMode_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "test", ModeTest.String())
	assert.Equal(t, "normal", ModeNormal.String())
}
