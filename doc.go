// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

/*
Package deflate implements a maximally-compressing DEFLATE (RFC 1951)
encoder. It trades encoding time for output size: given input bytes and an
iteration budget, it searches for an LZ77 parse and Huffman coding that
minimize the encoded length, then emits a sequence of standard-compliant
DEFLATE blocks. Decompression is out of scope; any conformant RFC 1951
decoder (including the standard library's compress/flate) can read the
output.

# Compress

Options may be nil (uses the default iteration budget and block splitting):

	out, bitsUsed, err := deflate.Deflate(data, nil)
	out, bitsUsed, err := deflate.Deflate(data, &deflate.Options{Iterations: 5})

Deflate returns the raw DEFLATE payload (no gzip/zlib framing) plus the
number of bits used in the final byte of out, mirroring RFC 1951's
bit-oriented framing.
*/
package deflate
