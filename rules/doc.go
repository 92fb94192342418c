// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package rules evaluates optional CEL expressions that constrain the value of
a declared variable beyond presence.

A declaration's `validate` key holds an expression over three variables:

  - name: the variable name
  - value: the raw resolved string
  - typed: the value after the declared type cast

For example:

	engine := rules.NewEngine()
	rule, err := engine.Compile(`typed > 0 && typed <= 64`)
	if err != nil {
		// the manifest carries a broken rule
	}
	ok, err := rule.Evaluate("WORKER_CONCURRENCY", "8", int64(8))

Expression length and runtime cost are bounded; see
[Engine.WithMaxExpressionLength] and [Engine.WithCostLimit].
*/
package rules
