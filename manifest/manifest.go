// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"

	"github.com/opencontainers/go-digest"

	"github.com/stacklok/nvar/validation/name"
)

// Manifest is the ordered set of declarations for an application.
type Manifest struct {
	declarations []Declaration
	index        map[string]int
	source       string
	digest       digest.Digest
}

// New builds a manifest from declarations in order. Names must be valid and
// unique.
func New(decls ...Declaration) (*Manifest, error) {
	m := &Manifest{
		declarations: make([]Declaration, 0, len(decls)),
		index:        make(map[string]int, len(decls)),
	}
	for _, d := range decls {
		if err := m.add(d); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Manifest) add(d Declaration) error {
	if err := name.Validate(d.Name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidName, err)
	}
	if _, ok := m.index[d.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, d.Name)
	}
	if d.Type == "" {
		d.Type = DefaultType
	}
	m.index[d.Name] = len(m.declarations)
	m.declarations = append(m.declarations, d)
	return nil
}

// Declarations returns the declarations in manifest order. The slice is a copy.
func (m *Manifest) Declarations() []Declaration {
	out := make([]Declaration, len(m.declarations))
	copy(out, m.declarations)
	return out
}

// Names returns the declared names in manifest order.
func (m *Manifest) Names() []string {
	out := make([]string, 0, len(m.declarations))
	for _, d := range m.declarations {
		out = append(out, d.Name)
	}
	return out
}

// Lookup returns the declaration with the given name.
func (m *Manifest) Lookup(n string) (Declaration, bool) {
	i, ok := m.index[n]
	if !ok {
		return Declaration{}, false
	}
	return m.declarations[i], true
}

// Len returns the number of declarations.
func (m *Manifest) Len() int {
	return len(m.declarations)
}

// Source returns the path the manifest was loaded from, if any.
func (m *Manifest) Source() string {
	return m.source
}

// Digest returns the content digest of the parsed manifest bytes. It is
// empty for manifests built with New.
func (m *Manifest) Digest() digest.Digest {
	return m.digest
}
