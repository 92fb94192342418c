// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package dotenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/nvar/logging"
	"github.com/stacklok/nvar/manifest"
	"github.com/stacklok/nvar/resolve"
)

func newTestReconciler(t *testing.T) *Reconciler {
	t.Helper()
	return NewReconciler(filepath.Join(t.TempDir(), ".env"), WithLogger(logging.Discard()))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func unsetVar(name string, value *string) resolve.Variable {
	v := resolve.Variable{Declaration: manifest.NewDeclaration(name), Source: resolve.SourceMissing}
	if value != nil {
		v.Value, v.Present, v.Source = *value, true, resolve.SourceDefault
	}
	return v
}

func ptr(s string) *string { return &s }

func TestTouch(t *testing.T) {
	t.Parallel()

	r := newTestReconciler(t)

	created, err := r.Touch()
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, Header, readFile(t, r.Path()))

	info, err := os.Stat(r.Path())
	require.NoError(t, err)
	assert.Equal(t, filePerm, info.Mode().Perm())

	created, err = r.Touch()
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, Header, readFile(t, r.Path()))
}

func TestTouch_ExistingFileUntouched(t *testing.T) {
	t.Parallel()

	r := newTestReconciler(t)
	require.NoError(t, os.WriteFile(r.Path(), []byte("A=1\n"), 0o600))

	created, err := r.Touch()
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "A=1\n", readFile(t, r.Path()))
}

func TestTouch_HeaderLinesAreComments(t *testing.T) {
	t.Parallel()

	r := newTestReconciler(t)
	_, err := r.Touch()
	require.NoError(t, err)

	names, endsWithNewline, err := r.scan()
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.True(t, endsWithNewline)
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing *string
		unset    []resolve.Variable
		want     string
		complete bool
	}{
		{
			name:     "creates file with header and assignments",
			unset:    []resolve.Variable{unsetVar("PORT", ptr("8")), unsetVar("HOST", ptr("localhost"))},
			want:     Header + "PORT=8\nHOST=localhost\n",
			complete: true,
		},
		{
			name:     "missing value is written empty",
			unset:    []resolve.Variable{unsetVar("API_KEY", nil)},
			want:     Header + "API_KEY=\n",
			complete: false,
		},
		{
			name:     "blank value is not complete",
			unset:    []resolve.Variable{unsetVar("B", ptr("  "))},
			want:     Header + "B=  \n",
			complete: false,
		},
		{
			name:     "existing assignment is kept",
			existing: ptr("PORT=9000\n"),
			unset:    []resolve.Variable{unsetVar("PORT", ptr("8"))},
			want:     "PORT=9000\n",
			complete: true,
		},
		{
			name:     "missing trailing newline is inserted",
			existing: ptr("A=1"),
			unset:    []resolve.Variable{unsetVar("B", ptr("2"))},
			want:     "A=1\nB=2\n",
			complete: true,
		},
		{
			name:     "prefix of another name does not count",
			existing: ptr("PORTAL=x\n"),
			unset:    []resolve.Variable{unsetVar("PORT", ptr("8"))},
			want:     "PORTAL=x\nPORT=8\n",
			complete: true,
		},
		{
			name:     "nothing unset",
			existing: ptr("A=1\n"),
			want:     "A=1\n",
			complete: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := newTestReconciler(t)
			if tc.existing != nil {
				require.NoError(t, os.WriteFile(r.Path(), []byte(*tc.existing), 0o600))
			}

			complete, err := r.Reconcile(tc.unset)
			require.NoError(t, err)
			assert.Equal(t, tc.complete, complete)
			assert.Equal(t, tc.want, readFile(t, r.Path()))
		})
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	t.Parallel()

	r := newTestReconciler(t)
	unset := []resolve.Variable{unsetVar("A", nil), unsetVar("B", ptr("b"))}

	_, err := r.Reconcile(unset)
	require.NoError(t, err)
	first := readFile(t, r.Path())

	_, err = r.Reconcile(unset)
	require.NoError(t, err)
	assert.Equal(t, first, readFile(t, r.Path()))
}

func TestReconcile_DuplicateInSameBatch(t *testing.T) {
	t.Parallel()

	r := newTestReconciler(t)
	_, err := r.Reconcile([]resolve.Variable{unsetVar("A", ptr("1")), unsetVar("A", ptr("2"))})
	require.NoError(t, err)
	assert.Equal(t, Header+"A=1\n", readFile(t, r.Path()))
}

func TestReconcile_UnwritableDirectory(t *testing.T) {
	t.Parallel()

	r := NewReconciler(filepath.Join(t.TempDir(), "missing", ".env"), WithLogger(logging.Discard()))
	_, err := r.Reconcile([]resolve.Variable{unsetVar("A", nil)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating")
}
