// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

import "sort"

// buildHuffmanLengths computes length-limited Huffman code lengths for
// freqs via the boundary package-merge algorithm (§4.4). Zero-frequency
// symbols get length 0; all others get a length in [1,maxbits], and the
// Kraft inequality holds with equality whenever possible.
//
// The node pool replaces the source's raw-pointer node lists with an
// arena of nodes addressed by integer index (§9's re-architecture note),
// and each of the maxbits "lists" is represented, as spec'd, by only its
// last two chain nodes.
func buildHuffmanLengths(freqs []uint32, maxbits int) []uint8 {
	n := len(freqs)
	lengths := make([]uint8, n)

	type leaf struct {
		weight uint64
		symbol int
	}
	leaves := make([]leaf, 0, n)
	for i, f := range freqs {
		if f != 0 {
			leaves = append(leaves, leaf{weight: uint64(f), symbol: i})
		}
	}

	if len(leaves) == 0 {
		return lengths
	}
	if len(leaves) == 1 {
		lengths[leaves[0].symbol] = 1
		return lengths
	}
	if len(leaves) == 2 {
		lengths[leaves[0].symbol] = 1
		lengths[leaves[1].symbol] = 1
		return lengths
	}

	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].weight != leaves[j].weight {
			return leaves[i].weight < leaves[j].weight
		}
		return leaves[i].symbol < leaves[j].symbol
	})

	numSymbols := len(leaves)
	assertf((1<<uint(maxbits)) >= numSymbols, "buildHuffmanLengths: maxbits %d too small for %d symbols", maxbits, numSymbols)

	sortedWeight := func(i int) uint64 { return leaves[i].weight }

	pool := make([]pmNode, 0, 2*maxbits+2*numSymbols)
	newNode := func(weight uint64, count, tail int) int {
		idx := len(pool)
		pool = append(pool, pmNode{weight: weight, count: count, tail: tail})
		return idx
	}

	lists := make([][2]int, maxbits)
	for i := 0; i < maxbits; i++ {
		lists[i][0] = newNode(sortedWeight(0), 1, -1)
		lists[i][1] = newNode(sortedWeight(1), 2, -1)
	}

	weightAt := func(i int) uint64 { return leaves[i].weight }
	// The top list needs 2*numSymbols-2 chains; two come from the
	// initialization above and each run adds at most one.
	numRuns := 2*numSymbols - 4
	for i := 0; i < numRuns-1; i++ {
		boundaryPM(lists, weightAt, numSymbols, &pool, maxbits-1)
	}
	boundaryPMFinal(lists, weightAt, numSymbols, &pool, maxbits-1)

	final := lists[maxbits-1][1]
	counts := make([]int, 0, numRuns)
	for idx := final; idx != -1; idx = pool[idx].tail {
		counts = append(counts, pool[idx].count)
	}
	for _, c := range counts {
		for s := 0; s < c; s++ {
			lengths[leaves[s].symbol]++
		}
	}

	verifyKraft(lengths, maxbits)
	return lengths
}

type pmNode struct {
	weight uint64
	count  int
	tail   int // index into the node pool, or -1
}

// boundaryPM performs one extension of list[index], either adopting the
// next leaf or packaging the two tails of list[index-1], recursing into
// the list below when a package is formed (§4.4 step 4).
func boundaryPM(lists [][2]int, weightAt func(int) uint64, numSymbols int, pool *[]pmNode, index int) {
	lastcount := (*pool)[lists[index][1]].count
	if index == 0 && lastcount >= numSymbols {
		return
	}

	oldChain := lists[index][1]
	newIdx := len(*pool)
	*pool = append(*pool, pmNode{})
	lists[index][0] = oldChain
	lists[index][1] = newIdx

	if index == 0 {
		(*pool)[newIdx] = pmNode{weight: weightAt(lastcount), count: lastcount + 1, tail: -1}
		return
	}

	sum := (*pool)[lists[index-1][0]].weight + (*pool)[lists[index-1][1]].weight
	if lastcount < numSymbols && sum > weightAt(lastcount) {
		(*pool)[newIdx] = pmNode{weight: weightAt(lastcount), count: lastcount + 1, tail: (*pool)[oldChain].tail}
	} else {
		(*pool)[newIdx] = pmNode{weight: sum, count: lastcount, tail: lists[index-1][1]}
		boundaryPM(lists, weightAt, numSymbols, pool, index-1)
		boundaryPM(lists, weightAt, numSymbols, pool, index-1)
	}
}

// boundaryPMFinal performs the last extension of the top list: it must
// only choose an option still reachable from the top, so (unlike
// boundaryPM) it never recurses into the list below (§4.4 step 4, "last
// extension is the final variant").
func boundaryPMFinal(lists [][2]int, weightAt func(int) uint64, numSymbols int, pool *[]pmNode, index int) {
	lastcount := (*pool)[lists[index][1]].count
	sum := (*pool)[lists[index-1][0]].weight + (*pool)[lists[index-1][1]].weight

	if lastcount < numSymbols && sum > weightAt(lastcount) {
		oldTail := (*pool)[lists[index][1]].tail
		newIdx := len(*pool)
		*pool = append(*pool, pmNode{count: lastcount + 1, tail: oldTail})
		lists[index][1] = newIdx
	} else {
		(*pool)[lists[index][1]].tail = lists[index-1][1]
	}
}

// verifyKraft aborts if the resulting code violates the Kraft inequality
// or exceeds maxbits (§7: both are fatal encoder-internal invariants).
func verifyKraft(lengths []uint8, maxbits int) {
	var sum float64
	for _, l := range lengths {
		assertf(int(l) <= maxbits, "verifyKraft: length %d exceeds maxbits %d", l, maxbits)
		if l > 0 {
			sum += 1.0 / float64(uint64(1)<<uint(l))
		}
	}
	assertf(sum <= 1.0+1e-9, "verifyKraft: Kraft inequality violated, sum=%v", sum)
}

// canonicalCodes assigns canonical Huffman codes from bit lengths,
// following the standard sort-by-(length,symbol) then next-code
// algorithm (RFC 1951 §3.2.2), the same algorithm the corpus's canonical
// encoder uses (other_examples/c5c5305e_chronos-tachyon-huffman__encoder.go.go
// secondPass).
func canonicalCodes(lengths []uint8) []uint16 {
	codes := make([]uint16, len(lengths))

	maxLen := 0
	for _, l := range lengths {
		if int(l) > maxLen {
			maxLen = int(l)
		}
	}
	if maxLen == 0 {
		return codes
	}

	blCount := make([]int, maxLen+1)
	for _, l := range lengths {
		if l > 0 {
			blCount[l]++
		}
	}

	nextCode := make([]uint16, maxLen+1)
	code := uint16(0)
	for bits := 1; bits <= maxLen; bits++ {
		code = (code + uint16(blCount[bits-1])) << 1
		nextCode[bits] = code
	}

	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		codes[sym] = nextCode[l]
		nextCode[l]++
	}
	return codes
}

// optimizeForRLE quantizes freqs to produce longer runs of equal
// frequency, which can shrink the encoded code-length tree at the cost
// of slightly suboptimal symbol frequencies (§4.4 "RLE optimization").
// The caller compares the encoded size with and without this
// quantization and keeps whichever is smaller (§4.8).
func optimizeForRLE(freqs []uint32) []uint32 {
	out := make([]uint32, len(freqs))
	copy(out, freqs)

	// Walk runs of consecutive non-zero, small, near-equal frequencies
	// and flatten them to their average: cheap near-ties produce longer
	// equal-length runs in the resulting Huffman tree, which the
	// code-length RLE symbols (16/17/18, §4.9) encode more cheaply than
	// many isolated lengths.
	i := 0
	for i < len(out) {
		if out[i] == 0 {
			i++
			continue
		}
		j := i + 1
		var sum uint64 = uint64(out[i])
		count := 1
		for j < len(out) && out[j] != 0 && nearEqual(out[i], out[j]) {
			sum += uint64(out[j])
			count++
			j++
		}
		if count >= 4 {
			avg := uint32((sum + uint64(count)/2) / uint64(count))
			if avg == 0 {
				avg = 1
			}
			for k := i; k < j; k++ {
				out[k] = avg
			}
		}
		i = j
	}
	return out
}

// nearEqual implements the "decaying threshold" comparison from §4.4: two
// small frequencies are considered flattenable when the larger is at most
// the smaller plus half of it plus one, and neither exceeds a
// cheap-to-merge ceiling of 4096.
func nearEqual(a, b uint32) bool {
	const ceiling = 1 << 12
	if a > ceiling || b > ceiling {
		return false
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return hi <= lo+lo/2+1
}
