// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

import "math"

// costModel estimates the encoded bit cost of a literal or match, used by
// optimalParse's shortest-path search (§4.7). Distinct implementations
// replace the source's function-pointer cost callback with a tagged
// interface value, per §9's "function-pointer cost model -> tagged
// variant" re-architecture note.
type costModel interface {
	// cost returns the estimated number of bits to encode a literal
	// (dist == 0, litlen is the byte value) or a match (dist > 0, litlen
	// is the match length).
	cost(litlen, dist int) float64
	// minCostPerStep is a lower bound on cost(...) across every litlen
	// and dist the model could be asked about, used to prune candidate
	// lengths during the forward DP pass (§4.7 step 2).
	minCostPerStep() float64
}

// statsCostModel derives costs from symbol-count statistics gathered from
// a previous parse: each symbol costs its Huffman code length under those
// statistics, and a symbol with no code (zero count) costs log2 of its
// alphabet's total count instead.
type statsCostModel struct {
	llLengths    []uint8
	distLengths  []uint8
	llFallback   float64
	distFallback float64
	minCost      float64
}

// newStatsCostModel builds a cost model from Huffman code lengths derived
// from llFreqs/distFreqs. A symbol with zero frequency gets length 0 from
// buildHuffmanLengths, which is not a real bit cost; such a symbol is
// still reachable from the DP (any byte value can appear as a literal
// regardless of what the running statistics saw), so it is charged
// log2(sum of its alphabet's frequencies) instead of 0, the same fallback
// ZopfliCalculateEntropy uses for a zero count.
func newStatsCostModel(llLengths, distLengths []uint8, llFreqs, distFreqs []uint32) *statsCostModel {
	m := &statsCostModel{
		llLengths:    llLengths,
		distLengths:  distLengths,
		llFallback:   log2SumFallback(llFreqs),
		distFallback: log2SumFallback(distFreqs),
	}
	m.minCost = m.computeMinCostPerStep()
	return m
}

// log2SumFallback returns log2 of the sum of freqs, or 0 if the sum is 0.
func log2SumFallback(freqs []uint32) float64 {
	var total uint64
	for _, f := range freqs {
		total += uint64(f)
	}
	if total == 0 {
		return 0
	}
	return math.Log2(float64(total))
}

func (m *statsCostModel) cost(litlen, dist int) float64 {
	if dist == 0 {
		return m.llCost(litlen)
	}
	sym, extraBits, _ := lengthSymbol(litlen)
	dsym, dextraBits, _ := distanceSymbol(dist)
	return m.llCost(sym) + float64(extraBits) + m.distCost(dsym) + float64(dextraBits)
}

func (m *statsCostModel) llCost(sym int) float64 {
	if m.llLengths[sym] == 0 {
		return m.llFallback
	}
	return float64(m.llLengths[sym])
}

func (m *statsCostModel) distCost(sym int) float64 {
	if m.distLengths[sym] == 0 {
		return m.distFallback
	}
	return float64(m.distLengths[sym])
}

func (m *statsCostModel) minCostPerStep() float64 { return m.minCost }

// computeMinCostPerStep scans for the cheapest literal and for the
// cheapest length symbol (with its extra bits) paired with the cheapest
// distance symbol, matching §4.7 step 2's pruning bound. Zero-frequency
// symbols are included via their fallback cost rather than skipped, since
// cost() can still return that fallback for them.
func (m *statsCostModel) computeMinCostPerStep() float64 {
	best := 1e18
	for i := 0; i < 256; i++ {
		if c := m.llCost(i); c < best {
			best = c
		}
	}
	llBits := 1e18
	for length := minMatch; length <= maxMatch; length++ {
		sym, extraBits, _ := lengthSymbol(length)
		if c := m.llCost(sym) + float64(extraBits); c < llBits {
			llBits = c
		}
	}
	for d := range m.distLengths {
		if c := llBits + m.distCost(d); c < best {
			best = c
		}
	}
	if best > 1e17 {
		return 0
	}
	return best
}

// fixedCostModel derives costs directly from DEFLATE's fixed Huffman
// tables (RFC 1951 §3.2.6), used for the one-shot fixed-tree DP variant
// (§4.7, "Fixed-tree variant"). Promoted to a first-class type so callers
// can run the fixed-block path without first collecting statistics.
type fixedCostModel struct {
	llLengths   []uint8
	distLengths []uint8
	minCost     float64
}

func newFixedCostModel() *fixedCostModel {
	ll := fixedLLLengths()
	d := fixedDistLengths()
	m := &fixedCostModel{llLengths: ll, distLengths: d}
	m.minCost = (&statsCostModel{llLengths: ll, distLengths: d}).computeMinCostPerStep()
	return m
}

func (m *fixedCostModel) cost(litlen, dist int) float64 {
	if dist == 0 {
		return float64(m.llLengths[litlen])
	}
	sym, extraBits, _ := lengthSymbol(litlen)
	dsym, dextraBits, _ := distanceSymbol(dist)
	return float64(m.llLengths[sym]) + float64(extraBits) + float64(m.distLengths[dsym]) + float64(dextraBits)
}

func (m *fixedCostModel) minCostPerStep() float64 { return m.minCost }
