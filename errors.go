// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

import (
	"errors"

	"github.com/chronos-tachyon/assert"
)

// Sentinel errors for caller-facing, recoverable conditions.
var (
	// ErrInvalidOptions is returned when Options fails validation (e.g. a
	// non-positive Iterations).
	ErrInvalidOptions = errors.New("deflate: invalid options")
)

// assertf aborts with a descriptive message when cond is false. Used for
// the encoder's internal invariants (§7): a failing assertion here always
// indicates an encoder bug, never bad caller input, so it is not a
// recoverable error.
func assertf(cond bool, format string, args ...any) {
	assert.Assertf(cond, format, args...)
}

// raisef unconditionally aborts with a descriptive message.
func raisef(format string, args ...any) {
	assert.Raisef(format, args...)
}
