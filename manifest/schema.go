// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/manifest.schema.json
var manifestSchema []byte

// ValidateSchema validates a decoded manifest document against the embedded
// manifest schema.
func ValidateSchema(doc map[string]any) error {
	if doc == nil {
		doc = map[string]any{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}
	return ValidateSchemaBytes(data)
}

// ValidateSchemaBytes validates raw manifest JSON bytes against the embedded
// manifest schema.
func ValidateSchemaBytes(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(manifestSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaValidation, err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return formatNumberedErrors(msgs)
}

// formatNumberedErrors formats a list of messages as a single error with a numbered list.
func formatNumberedErrors(msgs []string) error {
	if len(msgs) == 1 {
		return fmt.Errorf("%w: %s", ErrSchemaValidation, msgs[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "with %d errors:\n", len(msgs))
	for i, msg := range msgs {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
	}
	return fmt.Errorf("%w %s", ErrSchemaValidation, strings.TrimSuffix(b.String(), "\n"))
}
