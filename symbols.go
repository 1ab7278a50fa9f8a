// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

import "math/bits"

// lengthSymbol maps a match length in [3,258] to its literal/length symbol
// in [257,285] (§4.1). The table is small enough to precompute once.
var lengthSymbolTable [maxMatch - minMatch + 1]uint16
var lengthExtraBitsTable [maxMatch - minMatch + 1]uint8
var lengthExtraValueTable [maxMatch - minMatch + 1]uint16

// lengthBase and lengthExtra are the RFC 1951 §3.2.5 length code tables,
// indexed by symbol-257.
var lengthBase = [29]uint16{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
	35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtra = [29]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

func init() {
	for length := minMatch; length <= maxMatch; length++ {
		sym := 0
		for sym+1 < len(lengthBase) && int(lengthBase[sym+1]) <= length {
			sym++
		}
		idx := length - minMatch
		lengthSymbolTable[idx] = uint16(257 + sym)
		lengthExtraBitsTable[idx] = lengthExtra[sym]
		lengthExtraValueTable[idx] = uint16(length) - lengthBase[sym]
	}
}

// lengthSymbol returns (symbol, extraBits, extraValue) for a match length
// in [3,258].
func lengthSymbol(length int) (symbol int, extraBits int, extraValue int) {
	assertf(length >= minMatch && length <= maxMatch, "lengthSymbol: length %d out of [3,258]", length)
	idx := length - minMatch
	return int(lengthSymbolTable[idx]), int(lengthExtraBitsTable[idx]), int(lengthExtraValueTable[idx])
}

// lengthFromSymbol inverts lengthSymbol given a decoded symbol and extra
// value; used only by tests (§8 property 6), since decompression is out
// of scope for the encoder itself.
func lengthFromSymbol(symbol int, extraValue int) int {
	assertf(symbol >= 257 && symbol <= 285, "lengthFromSymbol: symbol %d out of [257,285]", symbol)
	return int(lengthBase[symbol-257]) + extraValue
}

// distanceSymbol returns (symbol, extraBits, extraValue) for a distance in
// [1,32768], using the branchless bit-trick formula from §4.1: for d<5 the
// symbol is d-1 with no extra bits; otherwise let L = floor(log2(d-1)), R =
// bit (L-1) of (d-1); symbol = 2L+R, extraBits = L-1,
// extraValue = (d-(1+2^L)) mod 2^(L-1).
func distanceSymbol(dist int) (symbol int, extraBits int, extraValue int) {
	assertf(dist >= 1 && dist <= windowSize, "distanceSymbol: distance %d out of [1,32768]", dist)
	if dist < 5 {
		return dist - 1, 0, 0
	}
	x := dist - 1
	l := bits.Len(uint(x)) - 1 // floor(log2(dist-1))
	r := (x >> uint(l-1)) & 1
	symbol = 2*l + r
	extraBits = l - 1
	extraValue = (dist - (1 + (1 << uint(l)))) & ((1 << uint(extraBits)) - 1)
	return symbol, extraBits, extraValue
}

// distanceBase and distanceExtra mirror RFC 1951 §3.2.5's distance code
// table; distanceBase is used by distanceFromSymbol (tests only), and
// distanceExtra supplies per-symbol extra-bit counts to blocksizer.go's
// size estimates.
var distanceBase = [30]uint16{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
	257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145,
	8193, 12289, 16385, 24577,
}

var distanceExtra = [30]uint8{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// distanceFromSymbol inverts distanceSymbol; test-only helper (§8 property 6).
func distanceFromSymbol(symbol int, extraValue int) int {
	assertf(symbol >= 0 && symbol <= 29, "distanceFromSymbol: symbol %d out of [0,29]", symbol)
	return int(distanceBase[symbol]) + extraValue
}
