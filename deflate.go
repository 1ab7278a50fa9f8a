// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

// deflate.go is the §4.11 Orchestrator: the public entry point plus the
// per-chunk pipeline (greedy seed -> block split -> optimal iterate ->
// pick block type -> emit). Grounded on the teacher's top-level
// Compress (compress.go: validate/clamp options, dispatch) and
// compress9x.go's main loop shape (init matcher -> loop while input
// remains -> advance).

// Deflate compresses src into a raw RFC 1951 DEFLATE bitstream (no
// gzip/zlib framing) and returns the accumulated output buffer plus the
// number of meaningful bits in its final byte (§6). opts may be nil to
// use DefaultOptions.
func Deflate(src []byte, opts *Options) (out []byte, bitsUsed int, err error) {
	opts = withDefaults(opts)
	if verr := opts.Validate(); verr != nil {
		return nil, 0, verr
	}

	w := newBitWriter(nil)

	if len(src) == 0 {
		emitStoredBlock(w, nil, true)
		out, bitsUsed = w.finish()
		return out, bitsUsed, nil
	}

	st := acquireBlockState()
	defer releaseBlockState(st)

	chunks := masterChunks(src, opts)
	for ci, ch := range chunks {
		deflatePart(w, st, src, ch.start, ch.end, opts, ci == len(chunks)-1)
	}

	out, bitsUsed = w.finish()
	return out, bitsUsed, nil
}

type chunkRange struct{ start, end int }

// masterChunks splits src into top-level chunks before any LZ77 parse
// (§4.11: "split input bytes into master chunks via uncompressed-byte
// block splitter"), bounding how much statistics-iteration work any one
// call to deflatePart must do. When block splitting is disabled, the
// whole input is a single chunk.
func masterChunks(src []byte, opts *Options) []chunkRange {
	if !opts.BlockSplitting || len(src) == 0 {
		return []chunkRange{{start: 0, end: len(src)}}
	}

	st := acquireBlockState()
	defer releaseBlockState(st)

	est := byteSplitEstimator{data: src, state: st}
	splits := splitPoints(est, opts.BlockSplittingMax)
	if len(splits) < 2 {
		return []chunkRange{{start: 0, end: len(src)}}
	}

	chunks := make([]chunkRange, 0, len(splits)-1)
	for i := 0; i+1 < len(splits); i++ {
		chunks = append(chunks, chunkRange{start: splits[i], end: splits[i+1]})
	}
	return chunks
}

// deflatePart runs the full per-chunk pipeline from §4.11: a greedy LZ77
// seed, block-splitting the resulting store, and for each sub-block an
// optimal-parse iteration loop followed by a pick of the cheapest block
// type.
func deflatePart(w *bitWriter, st *blockState, input []byte, start, end int, opts *Options, lastChunk bool) {
	if end == start {
		return
	}

	st.resetFor(input, start, end)
	seed := newLZ77Store()
	greedyParse(st.matcher, st.hash, seed, start, end)

	splits := []int{0, seed.len()}
	if opts.BlockSplitting {
		est := lz77SplitEstimator{store: seed}
		splits = splitPoints(est, opts.BlockSplittingMax)
		if len(splits) < 2 {
			splits = []int{0, seed.len()}
		}
	}

	for i := 0; i+1 < len(splits); i++ {
		a, b := splits[i], splits[i+1]
		if a == b {
			continue
		}
		final := lastChunk && i+2 == len(splits)
		emitBestSubBlock(w, st, input, seed, a, b, opts, final)
	}
}

// emitBestSubBlock re-runs the optimal-parse statistics loop over the
// byte range covered by store items [a,b), then emits whichever block
// type (stored/fixed/dynamic) is cheapest, matching the estimate
// blocksizer.go already computed (§4.11 step 3).
func emitBestSubBlock(w *bitWriter, st *blockState, input []byte, seed *lz77Store, a, b int, opts *Options, final bool) {
	_, _, byteStart := seed.item(a)
	lastLit, lastDist, byteLastPos := seed.item(b - 1)
	byteEnd := byteLastPos + 1
	if lastDist != 0 {
		byteEnd = byteLastPos + int(lastLit)
	}

	st.resetFor(input, byteStart, byteEnd)
	refined := optimalParseIterate(st.matcher, st.hash, byteStart, byteEnd, opts.Iterations)

	ll, d := refined.histogram(0, refined.len())
	storedBits := storedSizeBits(byteEnd - byteStart)
	fixedBits := fixedSizeBits(ll, d)
	dynBits, llLengths, distLengths := dynamicSizeBits(ll, d)

	switch {
	case storedBits <= fixedBits && storedBits <= dynBits:
		emitStoredBlock(w, input[byteStart:byteEnd], final)
	case fixedBits <= dynBits:
		emitFixedBlock(w, refined, 0, refined.len(), final)
	default:
		emitDynamicBlock(w, refined, 0, refined.len(), llLengths, distLengths, final)
	}
}
