// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

import (
	"bytes"
	"testing"
)

func buildTestStore(t *testing.T, in []byte) *lz77Store {
	t.Helper()
	st := acquireBlockState()
	st.resetFor(in, 0, len(in))
	store := newLZ77Store()
	greedyParse(st.matcher, st.hash, store, 0, len(in))
	releaseBlockState(st)
	return store
}

func TestSplitPoints_CoversWholeRangeAndIsSorted(t *testing.T) {
	in := bytes.Repeat([]byte("alpha beta gamma delta epsilon "), 300)
	store := buildTestStore(t, in)

	splits := splitPoints(lz77SplitEstimator{store: store}, 15)
	if len(splits) < 2 {
		t.Fatalf("expected at least [0,N], got %v", splits)
	}
	if splits[0] != 0 || splits[len(splits)-1] != store.len() {
		t.Fatalf("splits must span [0,%d), got %v", store.len(), splits)
	}
	for i := 1; i < len(splits); i++ {
		if splits[i] <= splits[i-1] {
			t.Fatalf("splits not strictly increasing: %v", splits)
		}
	}
}

func TestSplitPoints_RespectsMaxSplits(t *testing.T) {
	in := bytes.Repeat([]byte("zzzzzzzzzzyyyyyyyyyyxxxxxxxxxxwwwwwwwwww"), 500)
	store := buildTestStore(t, in)

	splits := splitPoints(lz77SplitEstimator{store: store}, 2)
	numSplits := len(splits) - 2 // interior split points, excluding 0 and N
	if numSplits > 2 {
		t.Fatalf("expected at most 2 splits, got %d from %v", numSplits, splits)
	}
}

func TestSplitPoints_EmptyStoreReturnsNothing(t *testing.T) {
	store := newLZ77Store()
	splits := splitPoints(lz77SplitEstimator{store: store}, 15)
	if splits != nil {
		t.Fatalf("expected nil splits for an empty store, got %v", splits)
	}
}

func TestBestBlockSizeBits_StoredNeverBelowThreeHeaderBits(t *testing.T) {
	in := []byte("x")
	store := buildTestStore(t, in)
	bits := bestBlockSizeBits(store, 0, store.len())
	if bits < 3 {
		t.Fatalf("block size estimate %d bits is implausibly small", bits)
	}
}
