// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/opencontainers/go-digest"
	"gopkg.in/yaml.v3"
)

// Format identifies the manifest encoding.
type Format int

const (
	// FormatYAML is the default manifest encoding.
	FormatYAML Format = iota
	// FormatTOML encodes each declaration as a table.
	FormatTOML
)

// FormatFromPath infers the manifest format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return FormatYAML, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	// #nosec G304 - The manifest path is supplied by the application owner
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	m.source = path
	return m, nil
}

// Parse decodes manifest bytes. Declarations keep the order in which they
// appear in the document. An empty document yields an empty manifest.
func Parse(data []byte, format Format) (*Manifest, error) {
	var (
		names []string
		raws  map[string]rawDeclaration
		err   error
	)
	switch format {
	case FormatTOML:
		names, raws, err = decodeTOML(data)
	default:
		names, raws, err = decodeYAML(data)
	}
	if err != nil {
		return nil, err
	}

	decls := make([]Declaration, 0, len(names))
	for _, n := range names {
		d, err := raws[n].declaration(n)
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}

	m, err := New(decls...)
	if err != nil {
		return nil, err
	}
	m.digest = digest.FromBytes(data)
	return m, nil
}

// rawDeclaration mirrors one manifest entry before defaults are applied.
type rawDeclaration struct {
	Type        string `yaml:"type" toml:"type"`
	Required    *bool  `yaml:"required" toml:"required"`
	Default     scalar `yaml:"default_value" toml:"default_value"`
	Passthrough *bool  `yaml:"passthrough" toml:"passthrough"`
	Filter      scalar `yaml:"filter_from_requests" toml:"filter_from_requests"`
	Validate    string `yaml:"validate" toml:"validate"`
	Description string `yaml:"description" toml:"description"`
}

func (r rawDeclaration) declaration(n string) (Declaration, error) {
	mode, err := ParseRedactionMode(r.Filter.value)
	if err != nil {
		return Declaration{}, fmt.Errorf("variable %s: %w", n, err)
	}

	d := Declaration{
		Name:        n,
		Type:        strings.TrimSpace(r.Type),
		Required:    true,
		Passthrough: r.Passthrough,
		Redaction:   mode,
		Validate:    strings.TrimSpace(r.Validate),
		Description: r.Description,
	}
	if d.Type == "" {
		d.Type = DefaultType
	}
	if r.Required != nil {
		d.Required = *r.Required
	}
	if r.Default.set {
		v := r.Default.value
		d.DefaultValue = &v
	}
	return d, nil
}

// scalar captures a manifest scalar as its string form, so that a default
// of `8` or `0x1F` reaches the cast table exactly as written.
type scalar struct {
	value string
	set   bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	if node.ShortTag() == "!!null" {
		return nil
	}
	s.value, s.set = node.Value, true
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (s *scalar) UnmarshalTOML(v any) error {
	if v == nil {
		return nil
	}
	s.value, s.set = fmt.Sprint(v), true
	return nil
}

func decodeYAML(data []byte) ([]string, map[string]rawDeclaration, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, nil, nil
	}

	doc := root.Content[0]
	if doc.Kind == yaml.ScalarNode && doc.ShortTag() == "!!null" {
		return nil, nil, nil
	}
	if doc.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("%w: line %d: manifest must be a mapping of variable names", ErrSchemaValidation, doc.Line)
	}

	names := make([]string, 0, len(doc.Content)/2)
	seen := make(map[string]struct{}, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key := doc.Content[i]
		if _, dup := seen[key.Value]; dup {
			return nil, nil, fmt.Errorf("%w: %s (line %d)", ErrDuplicateName, key.Value, key.Line)
		}
		seen[key.Value] = struct{}{}
		names = append(names, key.Value)
	}

	var generic map[string]any
	if err := doc.Decode(&generic); err != nil {
		return nil, nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if err := ValidateSchema(generic); err != nil {
		return nil, nil, err
	}

	raws := make(map[string]rawDeclaration, len(names))
	for i := 0; i+1 < len(doc.Content); i += 2 {
		var raw rawDeclaration
		if err := doc.Content[i+1].Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("variable %s: %w", doc.Content[i].Value, err)
		}
		raws[doc.Content[i].Value] = raw
	}
	return names, raws, nil
}

func decodeTOML(data []byte) ([]string, map[string]rawDeclaration, error) {
	var generic map[string]any
	if _, err := toml.Decode(string(data), &generic); err != nil {
		return nil, nil, fmt.Errorf("invalid TOML: %w", err)
	}
	if err := ValidateSchema(generic); err != nil {
		return nil, nil, err
	}

	var raws map[string]rawDeclaration
	meta, err := toml.Decode(string(data), &raws)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid TOML: %w", err)
	}

	// MetaData.Keys preserves definition order; top-level keys are the names.
	names := make([]string, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for _, key := range meta.Keys() {
		if len(key) == 0 {
			continue
		}
		n := key[0]
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}
	return names, raws, nil
}
