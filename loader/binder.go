// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package loader

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=binder.go -destination=mocks/mock_binder.go -package=mocks Binder

import (
	"maps"
	"slices"
	"sync"
)

// Binder receives the typed value of each satisfied variable. Hosts decide
// what binding means: a global, a struct field, a registry entry.
type Binder interface {
	Bind(name string, value any) error
}

// Constants is an in-memory Binder. It is safe for concurrent use, so one
// load pass can publish values read by many goroutines.
type Constants struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConstants returns an empty Constants.
func NewConstants() *Constants {
	return &Constants{values: make(map[string]any)}
}

// Bind implements Binder. Binding a name again replaces its value.
func (c *Constants) Bind(name string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[name] = value
	return nil
}

// Lookup returns the value bound to name.
func (c *Constants) Lookup(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[name]
	return v, ok
}

// Get returns the value bound to name, or nil.
func (c *Constants) Get(name string) any {
	v, _ := c.Lookup(name)
	return v
}

// Names returns the bound names, sorted.
func (c *Constants) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.values))
}
