// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

// blocksizer.go computes the encoded size, in bits, of an lz77Store range
// under each DEFLATE block type (§4.8). It is restructured around
// lz77Store's O(1) range histograms rather than the teacher's
// countTokenFrequencies-then-walk-the-table shape
// (other_examples/4a6ad52a_..._deflate_block.go.go), since every symbol
// sharing an alphabet entry also shares the same extra-bit count, so the
// whole Σ(symbol_bits+extra_bits) term reduces to one pass over the
// alphabet instead of one pass over the items.

// EncodedSize estimates the number of bits Deflate would emit for src
// without running the full optimal-parse iteration loop: a single
// greedy LZ77 pass over the whole input, costed as the best of
// stored/fixed/dynamic (§4.8). It exists for callers that want a size
// prediction cheaper than a full Deflate call, mirroring the way the
// teacher surfaces `DefaultCompressOptions` alongside the level table it
// wraps rather than forcing callers through a full compression run just
// to learn its cost (SPEC_FULL.md §C).
func EncodedSize(src []byte, opts *Options) (bits int, err error) {
	opts = withDefaults(opts)
	if verr := opts.Validate(); verr != nil {
		return 0, verr
	}
	if len(src) == 0 {
		return storedSizeBits(0), nil
	}

	st := acquireBlockState()
	defer releaseBlockState(st)
	st.resetFor(src, 0, len(src))

	store := newLZ77Store()
	greedyParse(st.matcher, st.hash, store, 0, len(src))

	return bestBlockSizeBits(store, 0, store.len()), nil
}

// storedSizeBits estimates the encoded size of byteLen raw bytes as a
// stored block: 3 header bits, padding to the next byte boundary, 32
// framing bits (LEN + NLEN), then the raw bytes themselves (§4.8). The
// padding is approximated at a half-byte for comparison purposes; actual
// emission pads exactly via bitWriter.align.
func storedSizeBits(byteLen int) int {
	return 3 + 4 + 32 + 8*byteLen
}

// fixedSizeBits computes the size of encoding histograms ll/d as a fixed
// block: a 3-bit header plus one (code length + extra bits) term per
// occurrence, read off the fixed tables (§4.8).
func fixedSizeBits(ll [numLL]uint32, d [numDist]uint32) int {
	bitsTotal := 3
	fixedLL := fixedLLLengths()
	fixedD := fixedDistLengths()
	for sym, count := range ll {
		if count == 0 {
			continue
		}
		bitsTotal += int(count) * (int(fixedLL[sym]) + lengthExtraBitsForSymbol(sym))
	}
	for sym, count := range d {
		if count == 0 {
			continue
		}
		bitsTotal += int(count) * (int(fixedD[sym]) + distExtraBitsForSymbol(sym))
	}
	bitsTotal += int(fixedLL[endOfBlock])
	return bitsTotal
}

// dynamicSizeBits computes the size of encoding histograms ll/d as a
// dynamic block, trying both the straight and RLE-optimized frequency
// tables and keeping the smaller (§4.8, "two candidate tree-lengths").
// It returns the total bits and the chosen (llLengths, distLengths) pair
// so the emitter can reuse the exact same tree without recomputing it.
func dynamicSizeBits(ll [numLL]uint32, d [numDist]uint32) (bits int, llLengths, distLengths []uint8) {
	ll = withEndOfBlock(ll)

	straightLL := buildHuffmanLengths(ll[:], maxBitsLL)
	straightD := buildHuffmanLengths(d[:], maxBitsDist)
	straightBits := 3 + treeEncodingBits(straightLL, straightD) + symbolBits(ll, d, straightLL, straightD) + int(straightLL[endOfBlock])

	rleLL := buildHuffmanLengths(optimizeForRLE(ll[:]), maxBitsLL)
	rleD := buildHuffmanLengths(optimizeForRLE(d[:]), maxBitsDist)
	// The RLE-optimized frequency table only ever changes which codes get
	// assigned to which lengths; the actual item stream still uses the
	// real (non-quantized) histogram when counting occurrences, since
	// every item is still encoded with its true symbol, just under a
	// length table derived from smoothed frequencies.
	rleBits := 3 + treeEncodingBits(rleLL, rleD) + symbolBits(ll, d, rleLL, rleD) + int(rleLL[endOfBlock])

	if rleBits < straightBits {
		return rleBits, rleLL, rleD
	}
	return straightBits, straightLL, straightD
}

// withEndOfBlock returns ll with a frequency of at least 1 recorded for
// the end-of-block symbol. lz77Store's histograms never record an item
// for symbol 256 — it's emitted exactly once per block but is never one
// of the store's (literal|match) items — so a Huffman tree built
// straight from the histogram could legally assign it a zero-length
// code, which emitDynamicBlock's writeSymbol would then refuse to write
// (§7: "must never emit a code with zero-length bits for a symbol it
// actually uses"). Every dynamic block uses symbol 256 exactly once, so
// its synthetic frequency is pinned at 1 here rather than left to the
// histogram.
func withEndOfBlock(ll [numLL]uint32) [numLL]uint32 {
	if ll[endOfBlock] == 0 {
		ll[endOfBlock] = 1
	}
	return ll
}

// bestDynamicSizeBits computes the dynamic-block encoded size for
// lz77Store range [a,b), used by optimalParseIterate to score candidate
// parses (§4.7's iteration loop compares "the actual block size").
func bestDynamicSizeBits(store *lz77Store, a, b int) int {
	ll, d := store.histogram(a, b)
	bits, _, _ := dynamicSizeBits(ll, d)
	return bits
}

// symbolBits sums (code length + extra bits) per occurrence for the
// given histograms under the given length tables.
func symbolBits(ll [numLL]uint32, d [numDist]uint32, llLengths, distLengths []uint8) int {
	total := 0
	for sym, count := range ll {
		if count == 0 || sym == endOfBlock {
			continue
		}
		total += int(count) * (int(llLengths[sym]) + lengthExtraBitsForSymbol(sym))
	}
	for sym, count := range d {
		if count == 0 {
			continue
		}
		total += int(count) * (int(distLengths[sym]) + distExtraBitsForSymbol(sym))
	}
	return total
}

// lengthExtraBitsForSymbol returns the number of extra bits following a
// literal/length symbol: 0 for literals and the end-of-block symbol,
// lengthExtra[sym-257] for match-length symbols.
func lengthExtraBitsForSymbol(sym int) int {
	if sym < 257 {
		return 0
	}
	return int(lengthExtra[sym-257])
}

// distExtraBitsForSymbol returns the number of extra bits following a
// distance symbol.
func distExtraBitsForSymbol(sym int) int {
	return int(distanceExtra[sym])
}

// treeEncodingBits computes the bits needed to transmit the dynamic
// block header (HLIT/HDIST/HCLEN, the code-length code lengths, and the
// RLE-encoded ll/dist length sequences), matching what emitDynamicBlock
// actually writes (§4.9) so size estimates and real emission agree.
func treeEncodingBits(llLengths, distLengths []uint8) int {
	distLengths = patchDistanceCodes(distLengths)
	seq := rleCodeLengthSequence(llLengths, distLengths)

	clFreq := make([]uint32, numCLen)
	for _, s := range seq {
		clFreq[s.symbol]++
	}
	clLengths := buildHuffmanLengths(clFreq, maxBitsCLen)

	bits := 5 + 5 + 4 // HLIT, HDIST, HCLEN
	hclen := numCLen
	for hclen > 4 && clLengths[codeLengthOrder[hclen-1]] == 0 {
		hclen--
	}
	bits += 3 * hclen

	for _, s := range seq {
		bits += int(clLengths[s.symbol]) + s.extraBits
	}
	return bits
}

func countTrailingNonzero(lengths []uint8, floor int) int {
	n := len(lengths)
	for n > floor && lengths[n-1] == 0 {
		n--
	}
	return n
}
