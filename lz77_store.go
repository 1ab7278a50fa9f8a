// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

// lz77Store is an append-only sequence of literals and back-references
// plus the per-item source position and running ll/dist histograms
// needed for O(1) range-histogram queries (§4.5). Grounded in shape on
// the teacher's window/buffer bookkeeping
// (other_examples/7b0f2b11_chronos-tachyon-buffer__lz77.go.go), adapted
// from a sliding window into a flat append-only store since this
// encoder's store lives for exactly one deflate_part call (§5).
type lz77Store struct {
	litLens []uint16 // litlen: literal byte in [0,255], or match length in [3,258]
	dists   []uint16 // dist: 0 for a literal, else [1,32768]
	pos     []int    // source position in the original input for each item

	// cumLL/cumDist hold a histogram snapshot every numLLHistogramStride
	// items (§4.5): cumLL[k] is the literal/length histogram for items
	// [0, k*numLLHistogramStride).
	cumLL   [][numLL]uint32
	cumDist [][numDist]uint32
}

func newLZ77Store() *lz77Store {
	return &lz77Store{}
}

func (s *lz77Store) reset() {
	s.litLens = s.litLens[:0]
	s.dists = s.dists[:0]
	s.pos = s.pos[:0]
	s.cumLL = s.cumLL[:0]
	s.cumDist = s.cumDist[:0]
}

func (s *lz77Store) len() int { return len(s.litLens) }

// appendLiteral appends a literal byte at source position p.
func (s *lz77Store) appendLiteral(b byte, p int) {
	s.append(uint16(b), 0, p)
}

// appendMatch appends a back-reference of the given length/distance
// starting at source position p.
func (s *lz77Store) appendMatch(length, dist, p int) {
	assertf(length >= minMatch && length <= maxMatch, "lz77Store.appendMatch: length %d out of [3,258]", length)
	assertf(dist >= 1 && dist <= windowSize, "lz77Store.appendMatch: dist %d out of [1,32768]", dist)
	s.append(uint16(length), uint16(dist), p)
}

func (s *lz77Store) append(litLen, dist uint16, p int) {
	if s.len()%numLLHistogramStride == 0 {
		s.pushHistogramSnapshot()
	}
	s.litLens = append(s.litLens, litLen)
	s.dists = append(s.dists, dist)
	s.pos = append(s.pos, p)
}

func (s *lz77Store) pushHistogramSnapshot() {
	var ll [numLL]uint32
	var d [numDist]uint32
	start := 0
	if n := len(s.cumLL); n > 0 {
		ll = s.cumLL[n-1]
		d = s.cumDist[n-1]
		start = (n - 1) * numLLHistogramStride
	}
	idx := s.len()
	for i := start; i < idx; i++ {
		addItemToHistogram(&ll, &d, s.litLens[i], s.dists[i])
	}
	s.cumLL = append(s.cumLL, ll)
	s.cumDist = append(s.cumDist, d)
}

func addItemToHistogram(ll *[numLL]uint32, d *[numDist]uint32, litLen, dist uint16) {
	if dist == 0 {
		ll[litLen]++
		return
	}
	sym, _, _ := lengthSymbol(int(litLen))
	ll[sym]++
	dsym, _, _ := distanceSymbol(int(dist))
	d[dsym]++
}

// histogram computes the literal/length and distance symbol histograms
// for items [a,b) using prefix subtraction from the nearest cumulative
// snapshots (§4.5): prefixAt(x) is built in O(numLLHistogramStride) work
// by starting from the snapshot nearest-below-x and scanning the
// remainder; histogram(a,b) is then prefixAt(b) minus prefixAt(a),
// achieving O(K) per query with O(N/K) snapshot storage.
func (s *lz77Store) histogram(a, b int) (ll [numLL]uint32, d [numDist]uint32) {
	assertf(a >= 0 && b <= s.len() && a <= b, "lz77Store.histogram: range [%d,%d) invalid for len %d", a, b, s.len())

	llA, dA := s.prefixAt(a)
	llB, dB := s.prefixAt(b)
	for i := range ll {
		ll[i] = llB[i] - llA[i]
	}
	for i := range d {
		d[i] = dB[i] - dA[i]
	}
	return ll, d
}

// prefixAt returns the literal/length and distance histograms for items
// [0,x).
func (s *lz77Store) prefixAt(x int) (ll [numLL]uint32, d [numDist]uint32) {
	snapIdx := x / numLLHistogramStride
	if snapIdx > len(s.cumLL)-1 {
		snapIdx = len(s.cumLL) - 1
	}
	nearest := 0
	if snapIdx >= 0 {
		ll = s.cumLL[snapIdx]
		d = s.cumDist[snapIdx]
		nearest = snapIdx * numLLHistogramStride
	}
	for i := nearest; i < x; i++ {
		addItemToHistogram(&ll, &d, s.litLens[i], s.dists[i])
	}
	return ll, d
}

// item returns the i'th item: (litLen, dist, sourcePos). dist == 0 means
// a literal (litLen is the byte value); otherwise litLen is a match
// length.
func (s *lz77Store) item(i int) (litLen, dist uint16, p int) {
	return s.litLens[i], s.dists[i], s.pos[i]
}
