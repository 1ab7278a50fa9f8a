// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

// matchCache holds, for every starting position in the current block, the
// best (length, distance) found by longestMatch plus a compact sublen
// table recording which distance first reached each observed length
// (§4.3). The exact byte layout of the sublen table is left
// implementation-defined by the spec's Open Questions (§9); this
// implementation stores it as ascending runs of (lengthLo, lengthHi,
// dist) rather than zopfli's own triple-byte packing, since nothing
// outside this package observes the layout — only the (length)->(dist)
// function it computes.
type matchCache struct {
	entries []cacheEntry
	base    int // input position corresponding to entries[0]
}

type cacheEntry struct {
	length uint16 // best length found, or 0 if not yet populated
	dist   uint16 // best distance found
	runs   []sublenRun
}

type sublenRun struct {
	lengthLo uint16
	lengthHi uint16
	dist     uint16
}

func newMatchCache(blockLen int) *matchCache {
	return &matchCache{entries: make([]cacheEntry, blockLen)}
}

// reset reuses the cache's backing array for a new block starting at
// input position base.
func (c *matchCache) reset(base, blockLen int) {
	if cap(c.entries) < blockLen {
		c.entries = make([]cacheEntry, blockLen)
	} else {
		c.entries = c.entries[:blockLen]
		for i := range c.entries {
			c.entries[i] = cacheEntry{}
		}
	}
	c.base = base
}

// get returns the cache entry for absolute input position pos, or nil if
// pos falls outside the current block.
func (c *matchCache) get(pos int) *cacheEntry {
	idx := pos - c.base
	if idx < 0 || idx >= len(c.entries) {
		return nil
	}
	return &c.entries[idx]
}

// populated reports whether this entry has been written by longestMatch.
func (e *cacheEntry) populated() bool {
	return e.length != 0
}

// noMatch reports whether the cache recorded "no match of length >= 3".
func (e *cacheEntry) noMatch() bool {
	return e.populated() && e.length < minMatch
}

// store records the result of a fresh longestMatch search. sublen, if
// non-nil, is indexed by length (sublen[l] is the distance that first
// reached length l, for l in [3, maxObserved]); zero entries are gaps.
func (e *cacheEntry) store(length, dist int, sublen []int) {
	assertf(length >= 1, "matchCache.store: length %d < 1", length)
	if length < minMatch {
		e.length = 1 // sentinel: "no match >= 3" (§3, §4.3 step 1)
		e.dist = 0
		e.runs = nil
		return
	}
	e.length = uint16(length)
	e.dist = uint16(dist)
	e.runs = e.runs[:0]
	if sublen == nil {
		return
	}
	maxLen := length
	if maxLen > len(sublen)-1 {
		maxLen = len(sublen) - 1
	}
	var runStart = -1
	var runDist uint16
	flush := func(end int) {
		if runStart >= 0 {
			e.runs = append(e.runs, sublenRun{lengthLo: uint16(runStart), lengthHi: uint16(end), dist: runDist})
		}
	}
	for l := minMatch; l <= maxLen; l++ {
		d := sublen[l]
		if d == 0 {
			flush(l - 1)
			runStart = -1
			continue
		}
		if runStart == -1 {
			runStart = l
			runDist = uint16(d)
		} else if uint16(d) != runDist {
			flush(l - 1)
			runStart = l
			runDist = uint16(d)
		}
	}
	flush(maxLen)
}

// sublenMax returns the highest length this entry's sublen table covers
// (0 if no runs were recorded).
func (e *cacheEntry) sublenMax() int {
	if len(e.runs) == 0 {
		return 0
	}
	return int(e.runs[len(e.runs)-1].lengthHi)
}

// distFor returns the distance that first achieved length l according to
// the cached sublen table, and whether it was found.
func (e *cacheEntry) distFor(l int) (int, bool) {
	for _, r := range e.runs {
		if l >= int(r.lengthLo) && l <= int(r.lengthHi) {
			return int(r.dist), true
		}
	}
	return 0, false
}

// canAnswer reports whether this cache entry can answer a longestMatch
// query with the given limit (§4.3 step 1): either the cached best length
// already satisfies the limit, or the sublen table's coverage reaches it.
func (e *cacheEntry) canAnswer(limit int) bool {
	if !e.populated() {
		return false
	}
	if e.noMatch() {
		return true
	}
	if int(e.length) < limit && e.sublenMax() < limit && e.sublenMax() < int(e.length) {
		return false
	}
	return true
}
