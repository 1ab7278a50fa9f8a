// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

// Options configures the encoder (§3, §6). The zero value is not valid
// input to Deflate directly; use DefaultOptions and override fields, or
// call Validate before relying on a hand-built Options.
type Options struct {
	// Iterations bounds how many times the optimal-parse statistics loop
	// (§4.7) refines its parse per sub-block. Must be positive.
	Iterations int

	// BlockSplitting enables the recursive cost-minimizing block splitter
	// (§4.10). When false, each chunk is encoded as a single block.
	BlockSplitting bool

	// BlockSplittingMax caps the number of block splits. 0 means
	// unlimited.
	BlockSplittingMax int
}

// DefaultOptions returns the §6 defaults: 15 iterations, block splitting
// enabled, up to 15 splits.
func DefaultOptions() *Options {
	return &Options{
		Iterations:        15,
		BlockSplitting:    true,
		BlockSplittingMax: 15,
	}
}

// Validate checks Options for internal consistency.
func (o *Options) Validate() error {
	if o.Iterations <= 0 {
		return ErrInvalidOptions
	}
	if o.BlockSplittingMax < 0 {
		return ErrInvalidOptions
	}
	return nil
}

// withDefaults returns o if non-nil, else DefaultOptions().
func withDefaults(o *Options) *Options {
	if o == nil {
		return DefaultOptions()
	}
	return o
}
