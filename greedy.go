// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

// greedyParse runs a single lazy-matching pass over input[start:end],
// appending literals and matches to store (§4.6). It plays the role the
// teacher's compress_1x_fast.go lazy-match loop plays for LZO1X: try a
// match, peek one byte ahead, and only take the match if the lookahead
// doesn't score better.
//
// Used both as the seed parse for optimalParse's statistics loop and, on
// plain byte chunks, as the cheap estimator behind uncompressed-byte
// block splitting (§4.10).
func greedyParse(f *longestMatchFinder, h *rollingHash, store *lz77Store, start, end int) {
	input := f.input

	sublen := make([]int, maxMatch+1)
	lazySublen := make([]int, maxMatch+1)

	pos := start
	for pos < end {
		h.ensureThrough(input, pos, end)

		clearSublen(sublen, maxMatch)
		length, dist := f.find(pos, end-pos, sublen)

		if length >= minMatch {
			if pos+1 < end {
				h.ensureThrough(input, pos+1, end)
				clearSublen(lazySublen, maxMatch)
				lazyLen, lazyDist := f.find(pos+1, end-pos-1, lazySublen)
				if lazyLen >= minMatch && matchScore(lazyLen, lazyDist) > matchScore(length, dist) {
					store.appendLiteral(input[pos], pos)
					pos++
					continue
				}
			}

			store.appendMatch(length, dist, pos)
			if pos+length-1 < end {
				h.ensureThrough(input, pos+length-1, end)
			}
			pos += length
			continue
		}

		store.appendLiteral(input[pos], pos)
		pos++
	}
}

// matchScore ranks a candidate match so that shorter-but-closer matches
// can beat longer-but-farther ones, favoring small distances which cost
// fewer extra bits to encode (§4.6 step 4).
func matchScore(length, dist int) int {
	if dist <= 1024 {
		return length - 1
	}
	return length - 5
}

func clearSublen(sublen []int, upTo int) {
	if upTo >= len(sublen) {
		upTo = len(sublen) - 1
	}
	for i := minMatch; i <= upTo; i++ {
		sublen[i] = 0
	}
}
