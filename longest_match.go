// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

// longestMatchFinder bundles the rolling hash, match cache, and chain
// walk bound used by longestMatch (§4.3). It plays the role the teacher's
// slidingWindowDict plays for LZO1X match finding (match.go,
// sliding_window.go): a single struct owning hash state across a whole
// block, queried once per input position.
type longestMatchFinder struct {
	input     []byte
	hash      *rollingHash
	cache     *matchCache
	maxChain  int
	sameRunLo int // minimum same[] run length before preferring the secondary chain
}

func newLongestMatchFinder(input []byte, hash *rollingHash, cache *matchCache, maxChain int) *longestMatchFinder {
	if maxChain <= 0 || maxChain > maxChainHits {
		maxChain = maxChainHits
	}
	return &longestMatchFinder{input: input, hash: hash, cache: cache, maxChain: maxChain, sameRunLo: 3}
}

// find returns the longest match at pos with length <= limit (and <=
// bytes remaining, and <= maxMatch), optionally filling sublenOut[l] with
// the distance that first reached length l for l in
// [3, min(limit, len(sublenOut)-1)] (§4.3).
func (f *longestMatchFinder) find(pos int, limit int, sublenOut []int) (length int, dist int) {
	remaining := len(f.input) - pos
	if limit > remaining {
		limit = remaining
	}
	if limit > maxMatch {
		limit = maxMatch
	}
	if limit < minMatch {
		// Nothing usable can be returned as a match; still worth a cache
		// probe only to keep callers uniform, but there is no need: a
		// match below minMatch is represented as (1, 0) by convention.
		return 1, 0
	}

	if entry := f.cache.get(pos); entry != nil && entry.populated() {
		if entry.noMatch() {
			return 1, 0
		}
		if limit >= int(entry.length) {
			assertf(bytesEqual(f.input, pos, pos-int(entry.dist), int(entry.length)), "longestMatch: cached match contradicts input at pos %d", pos)
			f.fillSublenFromCache(entry, sublenOut, int(entry.length))
			return int(entry.length), int(entry.dist)
		}
		if d, ok := entry.distFor(limit); ok {
			assertf(bytesEqual(f.input, pos, pos-d, limit), "longestMatch: cached sublen entry contradicts input at pos %d", pos)
			f.fillSublenFromCache(entry, sublenOut, limit)
			return limit, d
		}
		// Cache can't answer this particular limit; fall through to a
		// fresh chain walk (§4.3 step 1, "otherwise ... walk the chain").
	}

	length, dist = f.search(pos, limit, sublenOut)

	if length >= minMatch {
		assertf(pos-dist >= 0, "longestMatch: distance %d exceeds position %d", dist, pos)
		assertf(bytesEqual(f.input, pos, pos-dist, length), "longestMatch: verification failed at pos %d len %d dist %d", pos, length, dist)
	}

	f.storeResult(pos, length, dist, sublenOut, limit)
	return length, dist
}

func (f *longestMatchFinder) fillSublenFromCache(e *cacheEntry, sublenOut []int, limit int) {
	if sublenOut == nil {
		return
	}
	for l := minMatch; l <= limit && l < len(sublenOut); l++ {
		if d, ok := e.distFor(l); ok {
			sublenOut[l] = d
		}
	}
}

func (f *longestMatchFinder) storeResult(pos, length, dist int, sublenOut []int, limit int) {
	entry := f.cache.get(pos)
	if entry == nil {
		return
	}
	if length < minMatch {
		entry.store(1, 0, nil)
		return
	}
	if sublenOut != nil {
		entry.store(length, dist, sublenOut)
	} else {
		entry.store(length, dist, nil)
	}
	_ = limit
}

// search walks the hash chains, preferring the secondary same-run chain
// inside long runs of repeated bytes (§4.2, §4.3 step 2), comparing
// candidate bytes directly (step 3), and returns the best match found
// within f.maxChain probes.
func (f *longestMatchFinder) search(pos int, limit int, sublenOut []int) (bestLen int, bestDist int) {
	input := f.input
	bestLen = 0
	bestDist = 0

	sameRun := int(f.hash.sameAt(int32(pos)))
	useSecondary := sameRun >= f.sameRunLo

	var node int32
	if useSecondary {
		node = f.hash.chain2Head()
	} else {
		node = f.hash.chainHead()
	}

	hits := 0
	for node >= 0 && hits < f.maxChain {
		cpos := int(node)
		if cpos >= pos {
			if useSecondary {
				node = f.hash.chain2Next(node)
			} else {
				node = f.hash.chainNext(node)
			}
			continue
		}
		dist := pos - cpos
		if dist > windowSize {
			break
		}

		matchLen := matchLength(input, cpos, pos, limit)
		if matchLen >= minMatch {
			if sublenOut != nil && matchLen < len(sublenOut) {
				for l := minMatch; l <= matchLen; l++ {
					if sublenOut[l] == 0 {
						sublenOut[l] = dist
					}
				}
			}
			if matchLen > bestLen || (matchLen == bestLen && dist < bestDist) {
				bestLen = matchLen
				bestDist = dist
			}
		}

		if bestLen >= limit {
			break
		}

		hits++
		if useSecondary {
			node = f.hash.chain2Next(node)
			// Long literal runs of one repeated hash value can make the
			// primary chain just as productive once the same-run breaks;
			// both chains are bounded by the shared hits counter so this
			// never doubles the total work.
			if node >= 0 && int(f.hash.sameAt(node)) < f.sameRunLo {
				useSecondary = false
			}
		} else {
			node = f.hash.chainNext(node)
		}
	}

	if bestLen < minMatch {
		return 1, 0
	}
	return bestLen, bestDist
}

// matchLength returns the number of equal bytes starting at cpos and pos
// (cpos < pos), capped at limit.
func matchLength(input []byte, cpos, pos, limit int) int {
	n := 0
	for n < limit && pos+n < len(input) && input[cpos+n] == input[pos+n] {
		n++
	}
	return n
}

func bytesEqual(input []byte, a, b, n int) bool {
	for i := 0; i < n; i++ {
		if input[a+i] != input[b+i] {
			return false
		}
	}
	return true
}
