// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package logging provides the [log/slog.Logger] factory used by the nvar
library packages.

# Defaults

  - Format: JSON ([FormatJSON])
  - Level: INFO ([log/slog.LevelInfo])
  - Output: [os.Stderr]
  - Timestamps: [time.RFC3339]

# Usage

	logger := logging.New(
		logging.WithFormat(logging.FormatText),
		logging.WithLevel(slog.LevelDebug),
	)

Library entry points accept a logger through their own options, for
example loader.WithLogger, and fall back to [New] when none is given.

# Redaction

Secrets registered with a [redact.Filter] can be kept out of log output:

	filter := redact.NewFilter()
	logger := logging.New(logging.WithRedaction(filter))
	l.FilterSecrets(m, filter)
	logger.Info("connecting", "dsn", dsn) // password replaced by <DATABASE_PASSWORD>

Use [NewHandler] when the handler itself is needed.
*/
package logging
