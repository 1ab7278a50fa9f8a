// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

// optimalParse runs one shortest-path DP pass over input[start:end] under
// the given cost model, writing the resulting parse into store (§4.7).
// length_array/dist_array record, for each position reachable from
// start, the length (1 for a literal) and distance (0 for a literal) of
// the best incoming edge; the backward pass walks them from end to
// start to recover the chosen items in order.
func optimalParse(f *longestMatchFinder, h *rollingHash, model costModel, store *lz77Store, start, end int) {
	n := end - start
	pathCost := make([]float64, n+1)
	lengthArr := make([]int, n+1)
	distArr := make([]int, n+1)
	for i := 1; i <= n; i++ {
		pathCost[i] = infCost
	}

	input := f.input
	sublen := make([]int, maxMatch+1)
	minStep := model.minCostPerStep()

	for p := start; p < end; p++ {
		i := p - start
		h.ensureThrough(input, p, end)

		limit := end - p
		if limit > maxMatch {
			limit = maxMatch
		}
		clearSublen(sublen, limit)
		length, _ := f.find(p, limit, sublen)

		litCost := pathCost[i] + model.cost(int(input[p]), 0)
		if litCost < pathCost[i+1] {
			pathCost[i+1] = litCost
			lengthArr[i+1] = 1
			distArr[i+1] = 0
		}

		if length < minMatch {
			continue
		}
		for l := minMatch; l <= length; l++ {
			d := sublen[l]
			if d == 0 {
				continue
			}
			// A candidate step can only help if even its cheapest
			// possible cost would beat what's already recorded at
			// i+l (§4.7 step 2, "pruning").
			if pathCost[i]+minStep >= pathCost[i+l] {
				continue
			}
			c := pathCost[i] + model.cost(l, d)
			if c < pathCost[i+l] {
				pathCost[i+l] = c
				lengthArr[i+l] = l
				distArr[i+l] = d
			}
		}
	}

	type parsedItem struct {
		length, dist, pos int
	}
	items := make([]parsedItem, 0, n)
	i := n
	for i > 0 {
		l := lengthArr[i]
		if l == 0 {
			l = 1
		}
		d := distArr[i]
		items = append(items, parsedItem{length: l, dist: d, pos: start + i - l})
		i -= l
	}
	for k := len(items) - 1; k >= 0; k-- {
		it := items[k]
		if it.dist == 0 {
			store.appendLiteral(input[it.pos], it.pos)
		} else {
			store.appendMatch(it.length, it.dist, it.pos)
		}
	}
}

const infCost = 1e30

// lcg is a minimal linear congruential generator: deterministic and
// seedable, never math/rand or the wall clock, so repeated runs over the
// same input produce bit-identical output (§5, §9).
type lcg struct {
	state uint32
}

func (r *lcg) next() uint32 {
	r.state = r.state*1103515245 + 12345
	return r.state
}

// optimalParseIterate is the statistics iteration loop described in
// §4.7: seed from a greedy parse, then repeatedly derive a cost model
// from the running statistics, re-parse, and keep the result if it
// shrinks the encoded size. Statistics are nudged by a deterministic LCG
// after every iteration and blended 50/50 with the best-known
// statistics, matching the Open Question decision recorded in
// DESIGN.md; a streak of maxNoImproveStreak non-improving iterations
// stops the loop early.
func optimalParseIterate(f *longestMatchFinder, h *rollingHash, start, end int, iterations int) *lz77Store {
	input := f.input

	seed := newLZ77Store()
	greedyParse(f, h, seed, start, end)

	bestStore := seed
	bestLL, bestDist := toSlices(seed.histogram(0, seed.len()))
	bestBits := bestDynamicSizeBits(seed, 0, seed.len())

	statsLL, statsDist := append([]uint32(nil), bestLL...), append([]uint32(nil), bestDist...)

	rng := &lcg{state: 0x2545F491 ^ uint32(len(input))}
	noImprove := 0
	const maxNoImproveStreak = 5

	for iter := 0; iter < iterations; iter++ {
		llLens := buildHuffmanLengths(statsLL, maxBitsLL)
		distLens := buildHuffmanLengths(statsDist, maxBitsDist)
		model := newStatsCostModel(llLens, distLens, statsLL, statsDist)

		candidate := newLZ77Store()
		optimalParse(f, h, model, candidate, start, end)

		bits := bestDynamicSizeBits(candidate, 0, candidate.len())
		if bits < bestBits {
			bestBits = bits
			bestStore = candidate
			bestLL, bestDist = toSlices(candidate.histogram(0, candidate.len()))
			noImprove = 0
		} else {
			noImprove++
		}

		newLL, newDist := toSlices(candidate.histogram(0, candidate.len()))
		perturbStats(newLL, rng)
		perturbStats(newDist, rng)
		statsLL = blendStats(newLL, bestLL)
		statsDist = blendStats(newDist, bestDist)

		if noImprove >= maxNoImproveStreak {
			break
		}
	}

	return bestStore
}

func toSlices(ll [numLL]uint32, d [numDist]uint32) ([]uint32, []uint32) {
	llOut := make([]uint32, numLL)
	dOut := make([]uint32, numDist)
	copy(llOut, ll[:])
	copy(dOut, d[:])
	return llOut, dOut
}

// perturbStats nudges a frequency table with the LCG so the next cost
// model differs enough from the current best to potentially escape a
// local minimum, while remaining a deterministic function of rng's seed
// (§4.7, "perturb ... using a deterministic LCG-based randomization").
func perturbStats(freqs []uint32, rng *lcg) {
	var maxFreq uint32
	for _, f := range freqs {
		if f > maxFreq {
			maxFreq = f
		}
	}
	if maxFreq == 0 {
		return
	}
	for i := range freqs {
		r := rng.next()
		if r%3 != 0 {
			continue
		}
		j := int(rng.next() % uint32(len(freqs)))
		freqs[i] = (freqs[i] + freqs[j] + 1) / 2
	}
}

// blendStats averages two frequency tables 50/50 (the Open Question
// decision recorded in DESIGN.md).
func blendStats(a, b []uint32) []uint32 {
	out := make([]uint32, len(a))
	for i := range a {
		out[i] = (a[i] + b[i] + 1) / 2
	}
	return out
}
