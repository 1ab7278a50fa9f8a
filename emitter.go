// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

// emitter.go writes the bits blocksizer.go counted (§4.9). Grounded on
// other_examples/11f6f6bd_..._huffman_header.go.go's WriteDynamicHeader /
// writeRLECodeLengths / CodeLengthOrder shape and
// other_examples/4a6ad52a_..._deflate_block.go.go's
// WriteFixedBlock/WriteStoredBlock split.

// clSeqItem is one symbol of the run-length-encoded code-length
// sequence transmitted in a dynamic block header: a literal code length
// 0-15, or a repeat symbol 16/17/18 with its extra-bit count and value.
type clSeqItem struct {
	symbol     int
	extraBits  int
	extraValue int
}

// rleCodeLengthSequence run-length-encodes the HLIT+HDIST code lengths
// using symbols {0..15, 16 (repeat previous 3-6), 17 (zero run 3-10), 18
// (zero run 11-138)}, matching §4.9's rule set. Each run consumes as
// much as a single repeat symbol can carry before re-evaluating,
// implementing the "greedily... tie-breaking on longer run" rule.
func rleCodeLengthSequence(llLengths, distLengths []uint8) []clSeqItem {
	hlit := countTrailingNonzero(llLengths, 257)
	hdist := countTrailingNonzero(distLengths, 1)

	combined := make([]uint8, 0, hlit+hdist)
	combined = append(combined, llLengths[:hlit]...)
	combined = append(combined, distLengths[:hdist]...)

	var seq []clSeqItem
	n := len(combined)
	for i := 0; i < n; {
		value := combined[i]
		runLen := 1
		for i+runLen < n && combined[i+runLen] == value {
			runLen++
		}

		if value == 0 {
			j := 0
			for j < runLen {
				remaining := runLen - j
				switch {
				case remaining >= 11:
					take := remaining
					if take > 138 {
						take = 138
					}
					seq = append(seq, clSeqItem{symbol: 18, extraBits: 7, extraValue: take - 11})
					j += take
				case remaining >= 3:
					take := remaining
					if take > 10 {
						take = 10
					}
					seq = append(seq, clSeqItem{symbol: 17, extraBits: 3, extraValue: take - 3})
					j += take
				default:
					seq = append(seq, clSeqItem{symbol: 0})
					j++
				}
			}
		} else {
			seq = append(seq, clSeqItem{symbol: int(value)})
			j := 1
			for j < runLen {
				remaining := runLen - j
				if remaining < 3 {
					for k := 0; k < remaining; k++ {
						seq = append(seq, clSeqItem{symbol: int(value)})
					}
					break
				}
				take := remaining
				if take > 6 {
					take = 6
				}
				seq = append(seq, clSeqItem{symbol: 16, extraBits: 2, extraValue: take - 3})
				j += take
			}
		}
		i += runLen
	}
	return seq
}

// patchDistanceCodes forces at least two distance symbols to a non-zero
// length when the real distance alphabet would otherwise encode with
// zero or one symbol: some decoders reject HDIST==0 outright (§4.9,
// "patch distance codes for buggy decoders"). When exactly one symbol is
// already non-zero, only the other of {0,1} is patched in; the real
// symbol's length is left untouched. Setting both unconditionally would
// leave three non-zero length-1 codes whenever the real symbol isn't 0
// or 1, violating the Kraft inequality and making canonicalCodes hand
// out colliding bit patterns. Mirrors zopfli's
// PatchDistanceCodesForBuggyDecoders: patch symbol 1 if 0 is already the
// one in use, else patch symbol 0. The cost is one spurious bit; kept as
// its own named, independently testable step per SPEC_FULL.md's
// supplemented-features note.
func patchDistanceCodes(distLengths []uint8) []uint8 {
	nonzero := 0
	for _, l := range distLengths {
		if l != 0 {
			nonzero++
		}
	}
	if nonzero >= 2 {
		return distLengths
	}
	out := append([]uint8(nil), distLengths...)
	if nonzero == 0 {
		out[0] = 1
		out[1] = 1
		return out
	}
	if out[0] != 0 {
		out[1] = 1
	} else {
		out[0] = 1
	}
	return out
}

// emitStoredBlock writes a stored block: BFINAL, BTYPE=0, pad to byte,
// LEN/NLEN, then the raw bytes (§4.9).
func emitStoredBlock(w *bitWriter, data []byte, final bool) {
	w.writeBit(boolBit(final))
	w.writeBits(btypeStored, 2)
	w.align()

	length := len(data)
	assertf(length <= 0xFFFF, "emitStoredBlock: stored block length %d exceeds 65535", length)
	w.writeBytes([]byte{byte(length), byte(length >> 8)})
	nlen := ^uint16(length)
	w.writeBytes([]byte{byte(nlen), byte(nlen >> 8)})
	w.writeBytes(data)
}

// emitFixedBlock writes a fixed-Huffman block for store range [a,b)
// (§4.9).
func emitFixedBlock(w *bitWriter, store *lz77Store, a, b int, final bool) {
	w.writeBit(boolBit(final))
	w.writeBits(btypeFixed, 2)

	llLengths := fixedLLLengths()
	distLengths := fixedDistLengths()
	llCodes := canonicalCodes(llLengths)
	distCodes := canonicalCodes(distLengths)

	emitItems(w, store, a, b, llLengths, llCodes, distLengths, distCodes)
	writeSymbol(w, endOfBlock, llLengths, llCodes)
}

// emitDynamicBlock writes a dynamic-Huffman block for store range
// [a,b), reusing the exact (llLengths, distLengths) dynamicSizeBits
// already chose so the written bits match the size that was costed
// (§4.8, §4.9).
func emitDynamicBlock(w *bitWriter, store *lz77Store, a, b int, llLengths, distLengths []uint8, final bool) {
	w.writeBit(boolBit(final))
	w.writeBits(btypeDynamic, 2)

	distLengths = patchDistanceCodes(distLengths)
	hlit := countTrailingNonzero(llLengths, 257)
	hdist := countTrailingNonzero(distLengths, 1)

	w.writeBits(uint32(hlit-257), 5)
	w.writeBits(uint32(hdist-1), 5)

	seq := rleCodeLengthSequence(llLengths, distLengths)
	clFreq := make([]uint32, numCLen)
	for _, s := range seq {
		clFreq[s.symbol]++
	}
	clLengths := buildHuffmanLengths(clFreq, maxBitsCLen)
	clCodes := canonicalCodes(clLengths)

	hclen := numCLen
	for hclen > 4 && clLengths[codeLengthOrder[hclen-1]] == 0 {
		hclen--
	}
	w.writeBits(uint32(hclen-4), 4)
	for i := 0; i < hclen; i++ {
		w.writeBits(uint32(clLengths[codeLengthOrder[i]]), 3)
	}

	for _, s := range seq {
		w.writeBitsMSBFirst(uint32(clCodes[s.symbol]), uint(clLengths[s.symbol]))
		if s.extraBits > 0 {
			w.writeBits(uint32(s.extraValue), uint(s.extraBits))
		}
	}

	llCodes := canonicalCodes(llLengths)
	distCodes := canonicalCodes(distLengths)
	emitItems(w, store, a, b, llLengths, llCodes, distLengths, distCodes)
	writeSymbol(w, endOfBlock, llLengths, llCodes)
}

// emitItems writes every literal/match item in store[a:b) using the
// given code tables.
func emitItems(w *bitWriter, store *lz77Store, a, b int, llLengths []uint8, llCodes []uint16, distLengths []uint8, distCodes []uint16) {
	for i := a; i < b; i++ {
		litLen, dist, _ := store.item(i)
		if dist == 0 {
			writeSymbol(w, int(litLen), llLengths, llCodes)
			continue
		}
		sym, extraBits, extraValue := lengthSymbol(int(litLen))
		writeSymbol(w, sym, llLengths, llCodes)
		if extraBits > 0 {
			w.writeBits(uint32(extraValue), uint(extraBits))
		}
		dsym, dextraBits, dextraValue := distanceSymbol(int(dist))
		writeSymbol(w, dsym, distLengths, distCodes)
		if dextraBits > 0 {
			w.writeBits(uint32(dextraValue), uint(dextraBits))
		}
	}
}

func writeSymbol(w *bitWriter, sym int, lengths []uint8, codes []uint16) {
	assertf(lengths[sym] > 0, "writeSymbol: symbol %d has zero code length", sym)
	w.writeBitsMSBFirst(uint32(codes[sym]), uint(lengths[sym]))
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
