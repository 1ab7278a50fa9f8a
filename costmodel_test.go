// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

import "testing"

func TestFixedCostModel_CostIsPositiveAndMinCostIsLowerBound(t *testing.T) {
	m := newFixedCostModel()
	min := m.minCostPerStep()
	if min <= 0 {
		t.Fatalf("minCostPerStep() = %v, want > 0", min)
	}

	litCost := m.cost('A', 0)
	if litCost < min {
		t.Fatalf("literal cost %v is below the claimed lower bound %v", litCost, min)
	}

	matchCost := m.cost(minMatch, 1)
	if matchCost < min {
		t.Fatalf("match cost %v is below the claimed lower bound %v", matchCost, min)
	}
}

func TestStatsCostModel_KnownSymbolUsesItsCodeLength(t *testing.T) {
	llLengths := make([]uint8, numLL)
	distLengths := make([]uint8, numDist)
	llLengths[65] = 8
	distLengths[0] = 5

	llFreqs := make([]uint32, numLL)
	distFreqs := make([]uint32, numDist)
	llFreqs[65] = 10
	distFreqs[0] = 10

	m := newStatsCostModel(llLengths, distLengths, llFreqs, distFreqs)
	if got := m.cost(65, 0); got != 8 {
		t.Fatalf("cost(65,0) = %v, want 8", got)
	}
}

func TestStatsCostModel_ZeroFrequencySymbolGetsPositiveFallbackNotZero(t *testing.T) {
	llLengths := make([]uint8, numLL)
	distLengths := make([]uint8, numDist)
	llLengths[65] = 8 // symbol 66 is absent from the statistics

	llFreqs := make([]uint32, numLL)
	distFreqs := make([]uint32, numDist)
	llFreqs[65] = 100

	m := newStatsCostModel(llLengths, distLengths, llFreqs, distFreqs)
	got := m.cost(66, 0)
	if got <= 0 {
		t.Fatalf("cost(66,0) = %v, want a positive fallback cost, not a free encoding", got)
	}
	want := log2SumFallback(llFreqs)
	if got != want {
		t.Fatalf("cost(66,0) = %v, want log2(sum)=%v", got, want)
	}
}
