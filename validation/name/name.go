// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package name provides validation functions for environment variable names.
package name

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxLength bounds declared names.
const MaxLength = 256

var validNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks that a declared variable name can be used both as an
// environment variable key and as a .env assignment target: letters, digits
// and underscores, not starting with a digit.
func Validate(name string) error {
	if name == "" || strings.TrimSpace(name) == "" {
		return fmt.Errorf("variable name cannot be empty or consist only of whitespace")
	}

	if strings.Contains(name, "\x00") {
		return fmt.Errorf("variable name cannot contain null bytes")
	}

	if len(name) > MaxLength {
		return fmt.Errorf("variable name exceeds maximum length of %d bytes", MaxLength)
	}

	if strings.Contains(name, "=") {
		return fmt.Errorf("variable name cannot contain '=': %q", name)
	}

	if !validNameRegex.MatchString(name) {
		return fmt.Errorf("variable name can only contain letters, digits and underscores and must not start with a digit: %q", name)
	}

	return nil
}
