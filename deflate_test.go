// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/zopfligo

package deflate

import (
	"bytes"
	"compress/flate"
	"io"
	"math/rand"
	"testing"
)

// inflate decodes a raw RFC 1951 stream with the standard library's
// decoder, used as the external-decoder oracle DESIGN.md records for
// roundtrip verification (§8 properties 1-2): this package only ever
// writes DEFLATE, so it borrows compress/flate to read it back rather
// than carrying its own decompressor, which is explicitly out of scope
// (§1).
func inflate(t *testing.T, data []byte) []byte {
	t.Helper()
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("inflate: %v", err)
	}
	return out
}

func testCorpus() []struct {
	name string
	data []byte
} {
	rng := rand.New(rand.NewSource(42))
	randomBytes := make([]byte, 3000)
	rng.Read(randomBytes)

	mod251 := make([]byte, 65536)
	for i := range mod251 {
		mod251[i] = byte(i % 251)
	}

	return []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "single-byte", data: []byte{0x41}},
		{name: "short-text", data: []byte("hello, deflate world")},
		{name: "zeros-1024", data: bytes.Repeat([]byte{0x00}, 1024)},
		{name: "abab-16", data: bytes.Repeat([]byte("ab"), 16)},
		{name: "mod251-64k", data: mod251},
		{name: "random-3k", data: randomBytes},
		{name: "text-repeats", data: bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 400)},
	}
}

func TestDeflate_RoundTrip(t *testing.T) {
	for _, tc := range testCorpus() {
		for _, iterations := range []int{1, 3} {
			t.Run(tc.name, func(t *testing.T) {
				out, bitsUsed, err := Deflate(tc.data, &Options{
					Iterations:        iterations,
					BlockSplitting:    true,
					BlockSplittingMax: 15,
				})
				if err != nil {
					t.Fatalf("Deflate failed: %v", err)
				}
				if bitsUsed < 1 || bitsUsed > 8 {
					t.Fatalf("bitsUsed out of [1,8]: %d", bitsUsed)
				}

				got := inflate(t, out)
				if !bytes.Equal(got, tc.data) {
					t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(tc.data))
				}
			})
		}
	}
}

func TestDeflate_RoundTripWithoutBlockSplitting(t *testing.T) {
	for _, tc := range testCorpus() {
		out, _, err := Deflate(tc.data, &Options{Iterations: 2, BlockSplitting: false})
		if err != nil {
			t.Fatalf("%s: Deflate failed: %v", tc.name, err)
		}
		got := inflate(t, out)
		if !bytes.Equal(got, tc.data) {
			t.Fatalf("%s: round trip mismatch without block splitting", tc.name)
		}
	}
}

func TestDeflate_Determinism(t *testing.T) {
	data := bytes.Repeat([]byte("determinism check payload "), 200)
	opts := &Options{Iterations: 4, BlockSplitting: true, BlockSplittingMax: 10}

	out1, bits1, err := Deflate(data, opts)
	if err != nil {
		t.Fatalf("first Deflate failed: %v", err)
	}
	out2, bits2, err := Deflate(data, opts)
	if err != nil {
		t.Fatalf("second Deflate failed: %v", err)
	}

	if !bytes.Equal(out1, out2) || bits1 != bits2 {
		t.Fatal("two runs with identical input/options produced different output")
	}
}

func TestDeflate_EmptyInput(t *testing.T) {
	out, _, err := Deflate(nil, DefaultOptions())
	if err != nil {
		t.Fatalf("Deflate failed: %v", err)
	}
	got := inflate(t, out)
	if len(got) != 0 {
		t.Fatalf("expected empty output, got %d bytes", len(got))
	}
}

func TestDeflate_ZeroRunsCompressWellBelowSource(t *testing.T) {
	// Scenario S3.
	data := bytes.Repeat([]byte{0x00}, 1024)
	out, _, err := Deflate(data, DefaultOptions())
	if err != nil {
		t.Fatalf("Deflate failed: %v", err)
	}
	if len(out) >= 20 {
		t.Fatalf("expected compressed output under 20 bytes for 1024 zeros, got %d", len(out))
	}
	got := inflate(t, out)
	if !bytes.Equal(got, data) {
		t.Fatal("round trip mismatch for zero run")
	}
}

func TestDeflate_RejectsInvalidOptions(t *testing.T) {
	_, _, err := Deflate([]byte("x"), &Options{Iterations: 0})
	if err != ErrInvalidOptions {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}

	_, _, err = Deflate([]byte("x"), &Options{Iterations: 1, BlockSplittingMax: -1})
	if err != ErrInvalidOptions {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
}

func TestDeflate_MoreIterationsNeverMuchWorse(t *testing.T) {
	// Monotonicity is best-effort (§8 property 3): more iterations should
	// not regress badly since the loop always tracks best-so-far.
	data := bytes.Repeat([]byte("monotonic iteration payload, "), 150)

	out1, _, err := Deflate(data, &Options{Iterations: 1, BlockSplitting: true, BlockSplittingMax: 15})
	if err != nil {
		t.Fatalf("iterations=1: %v", err)
	}
	outK, _, err := Deflate(data, &Options{Iterations: 10, BlockSplitting: true, BlockSplittingMax: 15})
	if err != nil {
		t.Fatalf("iterations=10: %v", err)
	}

	slack := len(out1)/20 + 4
	if len(outK) > len(out1)+slack {
		t.Fatalf("iterations=10 produced %d bytes, worse than iterations=1's %d bytes beyond slack %d", len(outK), len(out1), slack)
	}
}

func TestDeflate_DynamicBlockUsedForMixedData(t *testing.T) {
	// Scenario S5.
	data := make([]byte, 65536)
	for i := range data {
		data[i] = byte(i % 251)
	}
	out, _, err := Deflate(data, DefaultOptions())
	if err != nil {
		t.Fatalf("Deflate failed: %v", err)
	}
	got := inflate(t, out)
	if !bytes.Equal(got, data) {
		t.Fatal("round trip mismatch for mod-251 sequence")
	}
}
