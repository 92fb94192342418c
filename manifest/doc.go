// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package manifest parses the declaration manifest that lists every
environment variable an application expects.

# Format

The manifest maps each variable name to an optional declaration body:

	DATABASE_URL:
	  description: Primary database connection string
	  filter_from_requests: true
	REDIS_URL:
	  default_value: redis://127.0.0.1:6379
	WORKER_CONCURRENCY:
	  type: Integer
	  default_value: 8
	  validate: typed > 0
	SENTRY_DSN:
	  required: false
	STRIPE_API_KEY:
	  passthrough: true
	  filter_from_requests: alone_as_basic_auth_password

Absent keys take their defaults: type String, required true, no default
value, passthrough decided by the process-wide override list, no
redaction. Declaration order is preserved and is the order in which
missing variables are reported.

The same structure may be written in TOML with one table per variable;
the format is picked from the file extension by [Load].

# Validation

Documents are checked against an embedded JSON schema before decoding, so
unknown keys and wrongly typed values are reported together:

	m, err := manifest.Load("config/environment_variables.yml")
	if errors.Is(err, manifest.ErrSchemaValidation) {
		// fix the manifest
	}

Duplicate and malformed names are rejected with [ErrDuplicateName] and
[ErrInvalidName].
*/
package manifest
