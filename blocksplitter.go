// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

import "sort"

// blocksplitter.go implements §4.10: recursively partition a range into
// sub-blocks whose summed best-of-{stored,fixed,dynamic} encoded sizes
// are minimized. No corpus file implements recursive block splitting
// (DESIGN.md); this is built directly against the algorithm description
// in §4.10 and blocksizer.go's estimator.

// splitEstimator abstracts what's being split: an lz77Store range (used
// after an LZ77 parse) or a raw byte range (used before any parse, via a
// cheap greedy-LZ77-then-size estimate, §4.10 "uncompressed-byte
// splitting").
type splitEstimator interface {
	// length is the total number of elements in the sequence being split.
	length() int
	// estimate returns the best achievable encoded size in bits for
	// range [a,b).
	estimate(a, b int) int
}

// lz77SplitEstimator estimates by reusing the histogram-driven block-size
// functions directly against a finished parse (§4.8).
type lz77SplitEstimator struct {
	store *lz77Store
}

func (e lz77SplitEstimator) length() int { return e.store.len() }

func (e lz77SplitEstimator) estimate(a, b int) int {
	return bestBlockSizeBits(e.store, a, b)
}

// bestBlockSizeBits returns the minimum of the stored/fixed/dynamic
// estimates for store range [a,b), mirroring the per-sub-block choice
// deflatePart makes when actually emitting (§4.11 step 3).
func bestBlockSizeBits(store *lz77Store, a, b int) int {
	byteLen := 0
	if b > a {
		_, _, pStart := store.item(a)
		lastLit, lastDist, pLast := store.item(b - 1)
		end := pLast + 1
		if lastDist != 0 {
			end = pLast + int(lastLit)
		}
		byteLen = end - pStart
	}

	best := storedSizeBits(byteLen)

	ll, d := store.histogram(a, b)
	if fb := fixedSizeBits(ll, d); fb < best {
		best = fb
	}
	if db, _, _ := dynamicSizeBits(ll, d); db < best {
		best = db
	}
	return best
}

// byteSplitEstimator estimates a raw byte range by running greedy LZ77 on
// it and summing the resulting block's size (§4.10, "uncompressed-byte
// splitting ... follows the same algorithm but estimates by running a
// greedy LZ77 on the chunk").
type byteSplitEstimator struct {
	data  []byte
	state *blockState
}

func (e byteSplitEstimator) length() int { return len(e.data) }

func (e byteSplitEstimator) estimate(a, b int) int {
	if b <= a {
		return storedSizeBits(0)
	}
	st := e.state
	st.resetFor(e.data, a, b)
	tmp := newLZ77Store()
	greedyParse(st.matcher, st.hash, tmp, a, b)
	return bestBlockSizeBits(tmp, 0, tmp.len())
}

// splitPoints finds split points in [0,n) minimizing the sum of
// per-sub-block estimates, subject to at most maxSplits splits (0 =
// unlimited), following §4.10's algorithm: repeatedly pick the largest
// unsplit interval, search it with a coarse 9-point sample narrowing to
// an exact integer minimum, and accept the split only if it strictly
// improves the total.
func splitPoints(e splitEstimator, maxSplits int) []int {
	n := e.length()
	if n == 0 {
		return nil
	}

	type interval struct {
		a, b int
		done bool
	}
	intervals := []interval{{a: 0, b: n}}
	splits := []int{0, n}

	splitCount := 0
	for {
		if maxSplits > 0 && splitCount >= maxSplits {
			break
		}

		// Find the largest not-done interval (§4.10 step 2).
		best := -1
		for i, iv := range intervals {
			if iv.done {
				continue
			}
			if best == -1 || (iv.b-iv.a) > (intervals[best].b-intervals[best].a) {
				best = i
			}
		}
		if best == -1 {
			break
		}

		iv := intervals[best]
		if iv.b-iv.a < 2 {
			intervals[best].done = true
			continue
		}

		s, improved := bestSplitPoint(e, iv.a, iv.b)
		if !improved {
			intervals[best].done = true
			continue
		}

		intervals[best] = interval{a: iv.a, b: s}
		intervals = append(intervals, interval{a: s, b: iv.b})
		splits = append(splits, s)
		splitCount++
	}

	sort.Ints(splits)
	return splits
}

// bestSplitPoint searches s in (a,b) minimizing estimate(a,s)+estimate(s,b),
// first narrowing with 9 equally-spaced samples, repeatedly shrinking the
// range to one sample step either side of the best sample (a
// golden-section-like scheme per §4.10 step 2), then scanning
// the final small neighborhood exactly. It reports whether splitting at
// all beats leaving [a,b) whole.
func bestSplitPoint(e splitEstimator, a, b int) (split int, improved bool) {
	whole := e.estimate(a, b)

	lo, hi := a+1, b-1
	if lo > hi {
		return 0, false
	}

	const sampleThreshold = 32
	for hi-lo > sampleThreshold {
		const numSamples = 9
		step := (hi - lo) / (numSamples + 1)
		if step < 1 {
			break
		}
		bestS, bestCost := -1, 0
		for k := 1; k <= numSamples; k++ {
			s := lo + k*step
			if s <= a || s >= b {
				continue
			}
			c := e.estimate(a, s) + e.estimate(s, b)
			if bestS == -1 || c < bestCost {
				bestS, bestCost = s, c
			}
		}
		if bestS == -1 {
			break
		}
		newLo, newHi := bestS-step, bestS+step
		if newLo < lo {
			newLo = lo
		}
		if newHi > hi {
			newHi = hi
		}
		if newHi-newLo >= hi-lo {
			break
		}
		lo, hi = newLo, newHi
	}

	bestS, bestCost := -1, 0
	for s := lo; s <= hi; s++ {
		c := e.estimate(a, s) + e.estimate(s, b)
		if bestS == -1 || c < bestCost {
			bestS, bestCost = s, c
		}
	}
	if bestS == -1 || bestCost >= whole {
		return 0, false
	}
	return bestS, true
}
