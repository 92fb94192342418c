// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package manifest

import "errors"

var (
	// ErrDuplicateName is returned when a manifest declares the same name twice.
	ErrDuplicateName = errors.New("duplicate variable name")

	// ErrInvalidName is returned when a declared name is not a usable variable name.
	ErrInvalidName = errors.New("invalid variable name")

	// ErrInvalidRedactionMode is returned for an unknown filter_from_requests value.
	ErrInvalidRedactionMode = errors.New("invalid redaction mode")

	// ErrSchemaValidation is returned when a manifest does not match the manifest schema.
	ErrSchemaValidation = errors.New("manifest schema validation failed")

	// ErrUnsupportedFormat is returned when the manifest file extension is not recognised.
	ErrUnsupportedFormat = errors.New("unsupported manifest format")
)
