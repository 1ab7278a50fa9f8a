// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

import (
	"math/rand"
	"testing"
)

// recount recomputes a histogram for [a,b) by scanning every item, the
// brute-force reference for prefixAt/histogram's O(K) prefix-subtraction
// scheme (§8 property 8).
func recount(s *lz77Store, a, b int) (ll [numLL]uint32, d [numDist]uint32) {
	for i := a; i < b; i++ {
		litLen, dist, _ := s.item(i)
		addItemToHistogram(&ll, &d, litLen, dist)
	}
	return ll, d
}

func TestLZ77Store_HistogramMatchesRecount(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := newLZ77Store()

	n := numLLHistogramStride*3 + 50
	for i := 0; i < n; i++ {
		if rng.Intn(4) == 0 {
			length := minMatch + rng.Intn(maxMatch-minMatch+1)
			dist := 1 + rng.Intn(windowSize)
			s.appendMatch(length, dist, i)
		} else {
			s.appendLiteral(byte(rng.Intn(256)), i)
		}
	}

	ranges := [][2]int{
		{0, n}, {0, 1}, {1, 1}, {5, 300}, {288, 288 * 2},
		{10, n - 10}, {n - 1, n}, {0, 0},
	}
	for _, r := range ranges {
		a, b := r[0], r[1]
		gotLL, gotD := s.histogram(a, b)
		wantLL, wantD := recount(s, a, b)
		if gotLL != wantLL {
			t.Fatalf("range [%d,%d): ll histogram mismatch", a, b)
		}
		if gotD != wantD {
			t.Fatalf("range [%d,%d): dist histogram mismatch", a, b)
		}
	}
}

func TestLZ77Store_AppendRejectsOutOfRangeMatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range match length")
		}
	}()
	s := newLZ77Store()
	s.appendMatch(2, 1, 0)
}

func TestLZ77Store_ItemDistinguishesLiteralsFromMatches(t *testing.T) {
	s := newLZ77Store()
	s.appendLiteral(0x41, 0)
	s.appendMatch(10, 5, 1)

	litLen, dist, pos := s.item(0)
	if dist != 0 || litLen != 0x41 || pos != 0 {
		t.Fatalf("item 0: got litLen=%d dist=%d pos=%d", litLen, dist, pos)
	}
	litLen, dist, pos = s.item(1)
	if dist != 5 || litLen != 10 || pos != 1 {
		t.Fatalf("item 1: got litLen=%d dist=%d pos=%d", litLen, dist, pos)
	}
}
