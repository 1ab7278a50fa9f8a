// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

import (
	"bytes"
	"testing"
)

func TestOptimalParse_ReconstructsInput(t *testing.T) {
	inputs := [][]byte{
		[]byte("abcabcabcabcabcabcabcabcabcabc"),
		[]byte("mississippi river mississippi river"),
		bytes.Repeat([]byte{0x2A}, 300),
	}
	for _, in := range inputs {
		st := acquireBlockState()
		st.resetFor(in, 0, len(in))
		store := newLZ77Store()
		model := newFixedCostModel()
		optimalParse(st.matcher, st.hash, model, store, 0, len(in))
		releaseBlockState(st)

		got := reconstruct(store)
		if !bytes.Equal(got, in) {
			t.Fatalf("optimalParse(%q): reconstructed %q", in, got)
		}
	}
}

func TestOptimalParseIterate_ReconstructsInputAndImprovesOrMatchesGreedy(t *testing.T) {
	in := bytes.Repeat([]byte("pattern-for-iteration-"), 80)

	st := acquireBlockState()
	st.resetFor(in, 0, len(in))
	greedyStore := newLZ77Store()
	greedyParse(st.matcher, st.hash, greedyStore, 0, len(in))
	greedyBits := bestDynamicSizeBits(greedyStore, 0, greedyStore.len())

	st.resetFor(in, 0, len(in))
	iterated := optimalParseIterate(st.matcher, st.hash, 0, len(in), 5)
	releaseBlockState(st)

	got := reconstruct(iterated)
	if !bytes.Equal(got, in) {
		t.Fatalf("optimalParseIterate reconstructed mismatch: got %d bytes, want %d", len(got), len(in))
	}

	iteratedBits := bestDynamicSizeBits(iterated, 0, iterated.len())
	if iteratedBits > greedyBits {
		t.Fatalf("iterated parse (%d bits) worse than greedy seed (%d bits)", iteratedBits, greedyBits)
	}
}

func TestLCG_IsDeterministic(t *testing.T) {
	a := &lcg{state: 12345}
	b := &lcg{state: 12345}
	for i := 0; i < 100; i++ {
		if a.next() != b.next() {
			t.Fatalf("lcg streams diverged at step %d", i)
		}
	}
}
