// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

// rollingHash implements §4.2: a three-byte rolling hash driving a primary
// hash-chain and a secondary "same-run" chain for long repeated-byte runs.
// It is adapted from the teacher's head2/head3 ring-buffered chain-next
// scheme in sliding_window.go, generalized from LZO's fixed 2/3-byte keys
// to DEFLATE's single 3-byte rolling formula and widened with the §3
// same[]/hashval2[] secondary chain the teacher's LZO1X scheme has no
// equivalent of.
type rollingHash struct {
	val uint32 // current 15-bit rolling hash of the next three bytes

	head []int32 // head[h] = most recent window position with hash h, or -1
	prev []int32 // prev[p mod W] = previous position sharing hash(p)

	val2  uint32  // rolling hash of the secondary ("same run") chain
	head2 []int32 // head2[h2] = most recent window position with hashval2 h2
	prev2 []int32 // prev2[p mod W] = previous position sharing hashval2(p)

	same []uint16 // same[p mod W] = run length of identical bytes ending at p, saturated

	lastPos int // highest absolute position passed to update so far, or -1
}

const hashTableSize = 1 << 16 // mask-free table sized above the 15-bit hash range

func newRollingHash() *rollingHash {
	h := &rollingHash{}
	h.reset(windowSize)
	return h
}

// reset reinitializes all chain state for a window of the given size. Only
// windowSize itself is ever used in this encoder (§6), but the parameter is
// kept to mirror the teacher's reset(windowSize) signature (§4.2).
func (h *rollingHash) reset(winSize int) {
	if cap(h.head) < hashTableSize {
		h.head = make([]int32, hashTableSize)
		h.head2 = make([]int32, hashTableSize)
	} else {
		h.head = h.head[:hashTableSize]
		h.head2 = h.head2[:hashTableSize]
	}
	for i := range h.head {
		h.head[i] = -1
		h.head2[i] = -1
	}
	if cap(h.prev) < winSize {
		h.prev = make([]int32, winSize)
		h.prev2 = make([]int32, winSize)
		h.same = make([]uint16, winSize)
	} else {
		h.prev = h.prev[:winSize]
		h.prev2 = h.prev2[:winSize]
		h.same = h.same[:winSize]
		for i := range h.prev {
			h.prev[i] = -1
			h.prev2[i] = -1
			h.same[i] = 0
		}
	}
	h.val = 0
	h.val2 = 0
	h.lastPos = -1
}

// ensureThrough advances the hash through position pos exactly once,
// regardless of how many times it is called for the same position
// across repeated passes over the same range (§4.7's statistics
// iteration loop re-runs optimalParse over an unchanged byte range many
// times; re-inserting a position into the chain would corrupt it).
func (h *rollingHash) ensureThrough(data []byte, pos, end int) {
	if h.lastPos < 0 {
		h.warmup(data, 0, len(data))
	}
	for h.lastPos < pos {
		h.update(data, h.lastPos+1, end)
		h.lastPos++
	}
}

func hashByte(val uint32, b byte) uint32 {
	return ((val << 5) ^ uint32(b)) & 0x7FFF
}

// warmup primes the rolling hash with the first two bytes at pos so the
// first update() call produces the hash of the 3-byte window starting at
// pos.
func (h *rollingHash) warmup(data []byte, pos, end int) {
	h.val = 0
	if pos < end {
		h.val = hashByte(h.val, data[pos])
	}
	if pos+1 < end {
		h.val = hashByte(h.val, data[pos+1])
	}
}

// update advances the rolling hash to include the byte at
// pos+minMatch-1 (clamped to end), inserts pos into the primary and
// secondary chains, and maintains the same-run counter (§4.2).
func (h *rollingHash) update(data []byte, pos, end int) {
	lookahead := pos + minMatch - 1
	var next byte
	if lookahead < end {
		next = data[lookahead]
	}
	h.val = hashByte(h.val, next)

	slot := pos & windowMask
	hv := h.val & (hashTableSize - 1)
	h.prev[slot] = h.head[hv]
	h.head[hv] = int32(pos)

	// same[] counts the run of identical bytes ending at pos (§3),
	// saturated so it cannot grow unbounded on long runs of one byte.
	var run uint16
	if pos > 0 && pos < end && data[pos] == data[pos-1] {
		prevSame := h.same[(pos-1)&windowMask]
		if int(prevSame)+1 < sameRunSaturate {
			run = prevSame + 1
		} else {
			run = sameRunSaturate
		}
	} else {
		run = 0
	}
	h.same[slot] = run

	h.val2 = uint32(run) ^ h.val
	h2 := h.val2 & (hashTableSize - 1)
	h.prev2[slot] = h.head2[h2]
	h.head2[h2] = int32(pos)
}

// chainHead returns the most recent position whose primary hash equals
// the live hash h.val (that of the last updated position), or -1 if none.
func (h *rollingHash) chainHead() int32 {
	return h.head[h.val&(hashTableSize-1)]
}

// chainNext walks to the previous position sharing the same primary hash
// as p.
func (h *rollingHash) chainNext(p int32) int32 {
	return h.prev[p&windowMask]
}

// chain2Head returns the most recent position whose secondary (same-run)
// hash equals the live h.val2.
func (h *rollingHash) chain2Head() int32 {
	return h.head2[h.val2&(hashTableSize-1)]
}

func (h *rollingHash) chain2Next(p int32) int32 {
	return h.prev2[p&windowMask]
}

// sameAt returns the same-run length recorded for position p.
func (h *rollingHash) sameAt(p int32) uint16 {
	return h.same[p&windowMask]
}
