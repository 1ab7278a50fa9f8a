// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

import "testing"

func TestEncodedSize_PositiveAndMatchesEmptyCase(t *testing.T) {
	bits, err := EncodedSize(nil, nil)
	if err != nil {
		t.Fatalf("EncodedSize(nil) failed: %v", err)
	}
	if bits != storedSizeBits(0) {
		t.Fatalf("EncodedSize(nil) = %d, want %d", bits, storedSizeBits(0))
	}

	bits, err = EncodedSize([]byte("a reasonably compressible piece of text, text, text"), DefaultOptions())
	if err != nil {
		t.Fatalf("EncodedSize failed: %v", err)
	}
	if bits <= 0 {
		t.Fatalf("EncodedSize = %d, want > 0", bits)
	}
}

func TestEncodedSize_RejectsInvalidOptions(t *testing.T) {
	if _, err := EncodedSize([]byte("x"), &Options{Iterations: -1}); err != ErrInvalidOptions {
		t.Fatalf("EncodedSize with bad options = %v, want ErrInvalidOptions", err)
	}
}

func TestStoredSizeBits_MatchesFormula(t *testing.T) {
	got := storedSizeBits(100)
	want := 3 + 4 + 32 + 8*100
	if got != want {
		t.Fatalf("storedSizeBits(100) = %d, want %d", got, want)
	}
}

func TestDynamicSizeBits_PicksSmallerOfStraightAndRLE(t *testing.T) {
	var ll [numLL]uint32
	var d [numDist]uint32
	for i := 0; i < 12; i++ {
		ll[i] = 10
	}
	ll[256] = 1 // end-of-block must be reachable
	d[0] = 5

	bits, llLengths, distLengths := dynamicSizeBits(ll, d)
	if bits <= 0 {
		t.Fatalf("expected positive bit estimate, got %d", bits)
	}
	if len(llLengths) != numLL || len(distLengths) != numDist {
		t.Fatalf("unexpected table sizes: ll=%d dist=%d", len(llLengths), len(distLengths))
	}
	for i, l := range llLengths {
		if (ll[i] == 0) != (l == 0) {
			t.Fatalf("ll symbol %d: freq=%d length=%d disagree on zero-ness", i, ll[i], l)
		}
	}

	sizeWith := func(llL, dL []uint8) int {
		return 3 + treeEncodingBits(llL, dL) + symbolBits(ll, d, llL, dL) + int(llL[endOfBlock])
	}
	straight := sizeWith(buildHuffmanLengths(ll[:], maxBitsLL), buildHuffmanLengths(d[:], maxBitsDist))
	rle := sizeWith(buildHuffmanLengths(optimizeForRLE(ll[:]), maxBitsLL), buildHuffmanLengths(optimizeForRLE(d[:]), maxBitsDist))
	if want := min(straight, rle); bits != want {
		t.Fatalf("dynamicSizeBits = %d, want the smaller of straight %d and RLE %d", bits, straight, rle)
	}
}

func TestFixedSizeBits_AccountsForEndOfBlock(t *testing.T) {
	var ll [numLL]uint32
	var d [numDist]uint32
	ll[65] = 3
	ll[endOfBlock] = 0 // dynamicSizeBits/fixedSizeBits add EOB unconditionally
	bitsWithoutItems := fixedSizeBits([numLL]uint32{}, [numDist]uint32{})
	bitsWithItems := fixedSizeBits(ll, d)
	if want := 3 + int(fixedLLLengths()[endOfBlock]); bitsWithoutItems != want {
		t.Fatalf("empty fixed block = %d bits, want header plus end-of-block = %d", bitsWithoutItems, want)
	}
	if bitsWithItems <= bitsWithoutItems {
		t.Fatalf("adding symbol occurrences should increase the estimate: with=%d without=%d", bitsWithItems, bitsWithoutItems)
	}
}

func TestTreeEncodingBits_NonNegativeForTrivialTables(t *testing.T) {
	llLengths := fixedLLLengths()
	distLengths := fixedDistLengths()
	bits := treeEncodingBits(llLengths, distLengths)
	if bits <= 0 {
		t.Fatalf("expected positive tree-encoding size, got %d", bits)
	}
}
