//go:build ignore

// gen_fixtures writes small hand-assembled QOI streams for smoke tests.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

var endMarker = []byte{0, 0, 0, 0, 0, 0, 0, 1}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(dir, 0o755)

	// Horizontal ramp (64x16): literal per row start, then diff +1 on red.
	write(filepath.Join(dir, "ramp.qoi"), 64, 16, ramp(64, 16))

	// Stripes (32x32): alternating literal colors with runs and index hits.
	write(filepath.Join(dir, "stripes.qoi"), 32, 32, stripes(32, 32))

	// Damaged copy of stripes: second half of the chunk data missing.
	s := stripes(32, 32)
	write(filepath.Join(dir, "stripes_cut.qoi"), 32, 32, s[:len(s)/2+1])

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 3 fixtures in %s\n", dir)
}

func header(w, h uint32) []byte {
	b := []byte("qoif")
	b = binary.BigEndian.AppendUint32(b, w)
	b = binary.BigEndian.AppendUint32(b, h)
	return append(b, 4, 0)
}

func ramp(w, h int) []byte {
	var b []byte
	for y := 0; y < h; y++ {
		b = append(b, 0xff, 0, uint8(y*16), 128, 255)
		for x := 1; x < w; x++ {
			b = append(b, 0b01_11_10_10) // dr=+1
		}
	}
	return b
}

func stripes(w, h int) []byte {
	var b []byte
	// red hashes to 50, blue to 46.
	b = append(b, 0xff, 255, 0, 0, 255)
	b = append(b, 0xfe, 0, 0, 255)
	for y := 0; y < h; y++ {
		idx := byte(50)
		if y%2 == 1 {
			idx = 46
		}
		b = append(b, idx)
		for left := w - 1; left > 0; left -= 62 {
			n := min(left, 62)
			b = append(b, 0b11_000000|byte(n-1))
		}
	}
	return b
}

func write(path string, w, h uint32, body []byte) {
	data := append(header(w, h), body...)
	data = append(data, endMarker...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		panic(err)
	}
}
