// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

import "sync"

// blockState bundles the hash table, match cache, and longest-match
// finder that own a single compression pass's working set (§5: "the hash
// state, the match cache, the bit writer, and the current LZ77 store"
// are owned by one logical actor). Grounded directly on the teacher's
// sliding_window_pool.go acquire/release pair, generalized from LZO's
// single slidingWindowDict to this encoder's separate hash/cache/finder
// fields.
type blockState struct {
	hash     *rollingHash
	cache    *matchCache
	matcher  *longestMatchFinder
	maxChain int
}

var blockStatePool = sync.Pool{
	New: func() any {
		return &blockState{}
	},
}

// acquireBlockState gets a blockState from the pool, resetting the hash
// and dropping the previous matcher; the cache is cleared by resetFor,
// which every user calls before matching.
func acquireBlockState() *blockState {
	st := blockStatePool.Get().(*blockState)
	if st.hash == nil {
		st.hash = newRollingHash()
	} else {
		st.hash.reset(windowSize)
	}
	if st.cache == nil {
		st.cache = newMatchCache(0)
	}
	st.matcher = nil
	return st
}

// releaseBlockState returns st to the pool for reuse by a later
// deflatePart call, the way the orchestrator reuses the bit writer
// across parts (§5).
func releaseBlockState(st *blockState) {
	if st == nil {
		return
	}
	blockStatePool.Put(st)
}

// resetFor rewires st to operate over input[start:end), priming the hash
// chain and cache for a fresh chunk (used both by deflatePart and by
// byteSplitEstimator's cheap greedy-LZ77 probes, §4.10).
func (st *blockState) resetFor(input []byte, start, end int) {
	st.hash.reset(windowSize)
	st.hash.warmup(input, start, end)
	st.hash.lastPos = start - 1
	st.cache.reset(start, end-start)
	st.matcher = newLongestMatchFinder(input, st.hash, st.cache, st.maxChain)
}
