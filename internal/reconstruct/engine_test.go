package reconstruct

import (
	"bytes"
	"errors"
	"testing"

	"github.com/AnyUserName/qoiscope/internal/chunk"
)

func run(t *testing.T, chunks ...chunk.Chunk) Buffer {
	t.Helper()
	buf, err := Reconstruct(chunk.Slice(chunks))
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	return buf
}

func TestHash_Range(t *testing.T) {
	for _, v := range []uint8{0, 1, 127, 128, 254, 255} {
		for _, a := range []uint8{0, 255} {
			p := chunk.Pixel{R: v, G: 255 - v, B: v, A: a}
			if h := Hash(p); h >= CacheSize {
				t.Fatalf("hash(%v) = %d out of range", p, h)
			}
		}
	}
	// 255*26 = 6630 would overflow a byte-width sum.
	if h := Hash(chunk.Pixel{255, 255, 255, 255}); h != 6630%64 {
		t.Errorf("hash(white) = %d, want %d", h, 6630%64)
	}
}

func TestCache_LookupOutOfRange(t *testing.T) {
	var c Cache
	for _, idx := range []int{-1, 64, 1000} {
		if _, err := c.Lookup(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("lookup(%d): got %v", idx, err)
		}
	}
}

func TestCache_StoreEvictsCollision(t *testing.T) {
	var c Cache
	a := chunk.Pixel{R: 1, A: 255}  // 3 + 2805
	b := chunk.Pixel{R: 65, A: 255} // 195 + 2805, same slot
	if Hash(a) != Hash(b) {
		t.Fatalf("fixture colors do not collide: %d vs %d", Hash(a), Hash(b))
	}
	c.Store(a)
	c.Store(b)
	got, _ := c.Lookup(int(Hash(a)))
	if got != b {
		t.Errorf("slot holds %v, want %v", got, b)
	}
}

func TestReconstruct_LiteralThenRun(t *testing.T) {
	buf := run(t, chunk.Literal{10, 20, 30, 255}, chunk.Run{Length: 3})
	if len(buf.Pix) != 16 || buf.Pixels() != 4 {
		t.Fatalf("got %d bytes / %d pixels", len(buf.Pix), buf.Pixels())
	}
	want := bytes.Repeat([]byte{10, 20, 30, 255}, 4)
	if !bytes.Equal(buf.Pix, want) {
		t.Errorf("got %v, want %v", buf.Pix, want)
	}
}

func TestReconstruct_LiteralRGBUsesDefaultAlpha(t *testing.T) {
	buf := run(t, chunk.LiteralRGB{5, 5, 5})
	if !bytes.Equal(buf.Pix, []byte{5, 5, 5, 255}) {
		t.Errorf("got %v", buf.Pix)
	}
}

func TestReconstruct_LiteralRGBKeepsPreviousAlpha(t *testing.T) {
	buf := run(t, chunk.Literal{0, 0, 0, 7}, chunk.LiteralRGB{1, 2, 3})
	if !bytes.Equal(buf.Pix[4:], []byte{1, 2, 3, 7}) {
		t.Errorf("got %v", buf.Pix[4:])
	}
}

func TestReconstruct_SmallDiffWraps(t *testing.T) {
	buf := run(t, chunk.Literal{255, 0, 0, 255}, chunk.SmallDiff{DR: 1, DG: 0, DB: 0})
	if !bytes.Equal(buf.Pix[4:], []byte{0, 0, 0, 255}) {
		t.Errorf("got %v", buf.Pix[4:])
	}

	buf = run(t, chunk.SmallDiff{DR: -2, DG: -1, DB: 1})
	if !bytes.Equal(buf.Pix, []byte{254, 255, 1, 255}) {
		t.Errorf("from default: got %v", buf.Pix)
	}
}

func TestReconstruct_LumaDiff(t *testing.T) {
	// dg=-32, dr=-32+7=-25, db=-32-8=-40
	buf := run(t, chunk.Literal{100, 100, 100, 9}, chunk.LumaDiff{DRMinusDG: 7, DG: -32, DBMinusDG: -8})
	if !bytes.Equal(buf.Pix[4:], []byte{75, 68, 60, 9}) {
		t.Errorf("got %v", buf.Pix[4:])
	}

	// wraps: 10 + (31+7) = 48, 10 + 31 = 41, 250 + (31+7) = 288 -> 32
	buf = run(t, chunk.Literal{10, 10, 250, 255}, chunk.LumaDiff{DRMinusDG: 7, DG: 31, DBMinusDG: 7})
	if !bytes.Equal(buf.Pix[4:], []byte{48, 41, 32, 255}) {
		t.Errorf("wrap: got %v", buf.Pix[4:])
	}
}

func TestReconstruct_IndexRef(t *testing.T) {
	red := chunk.Literal{255, 0, 0, 255}
	blue := chunk.Literal{0, 0, 255, 255}
	redIdx := int(Hash(chunk.Pixel{255, 0, 0, 255}))

	buf := run(t, red, blue, chunk.IndexRef{Index: redIdx}, chunk.Run{Length: 1})
	want := []byte{255, 0, 0, 255, 0, 0, 255, 255, 255, 0, 0, 255, 255, 0, 0, 255}
	if !bytes.Equal(buf.Pix, want) {
		t.Errorf("got %v, want %v", buf.Pix, want)
	}
}

func TestReconstruct_IndexRefHashMatchesSlot(t *testing.T) {
	chunks := []chunk.Chunk{
		chunk.Literal{12, 34, 56, 78},
		chunk.SmallDiff{DR: 1, DG: -1, DB: 0},
		chunk.LumaDiff{DRMinusDG: 2, DG: 10, DBMinusDG: -3},
		chunk.LiteralRGB{200, 100, 50},
	}
	buf := run(t, chunks...)
	for i := 0; i < buf.Pixels(); i++ {
		px := buf.Pix[i*4 : i*4+4]
		p := chunk.Pixel{R: px[0], G: px[1], B: px[2], A: px[3]}
		idx := int(Hash(p))
		out := run(t, append(append([]chunk.Chunk{}, chunks...), chunk.IndexRef{Index: idx})...)
		last := out.Pix[len(out.Pix)-4:]
		if Hash(chunk.Pixel{last[0], last[1], last[2], last[3]}) != uint8(idx) {
			t.Errorf("index %d returned %v", idx, last)
		}
	}
}

func TestReconstruct_RunDoesNotTouchCache(t *testing.T) {
	// The default previous pixel is never stored, so a run of it leaves
	// its slot empty.
	slot := int(Hash(chunk.Pixel{A: 255}))
	buf := run(t, chunk.Run{Length: 2}, chunk.IndexRef{Index: slot})
	if !bytes.Equal(buf.Pix, []byte{0, 0, 0, 255, 0, 0, 0, 255, 0, 0, 0, 0}) {
		t.Errorf("got %v", buf.Pix)
	}
}

func TestReconstruct_ZeroRunIsNoop(t *testing.T) {
	buf := run(t, chunk.Run{Length: 0}, chunk.Literal{1, 1, 1, 1}, chunk.Run{Length: 0})
	if buf.Pixels() != 1 {
		t.Errorf("got %d pixels", buf.Pixels())
	}
}

func TestReconstruct_PixelCountMatchesChunks(t *testing.T) {
	chunks := []chunk.Chunk{
		chunk.Literal{1, 2, 3, 4},
		chunk.Run{Length: 62},
		chunk.LiteralRGB{9, 9, 9},
		chunk.Run{Length: 5},
		chunk.IndexRef{Index: 0},
		chunk.SmallDiff{},
		chunk.LumaDiff{},
	}
	want := 0
	for _, c := range chunks {
		want += chunk.PixelCount(c)
	}
	if got := run(t, chunks...).Pixels(); got != want || want != 72 {
		t.Errorf("got %d pixels, want %d", got, want)
	}
}

func TestReconstruct_IndexOutOfRangeAborts(t *testing.T) {
	chunks := []chunk.Chunk{chunk.Literal{1, 2, 3, 4}, chunk.IndexRef{Index: 64}, chunk.Run{Length: 3}}
	buf, err := Reconstruct(chunk.Slice(chunks))
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("got %v, want ErrIndexOutOfRange", err)
	}
	var ce *ChunkError
	if !errors.As(err, &ce) || ce.Ordinal != 1 {
		t.Errorf("chunk error: %+v", ce)
	}
	if buf.Pixels() != 0 {
		t.Errorf("aborted pass returned %d pixels", buf.Pixels())
	}
}

func TestReconstruct_EmptySource(t *testing.T) {
	buf := run(t)
	if buf.Pixels() != 0 {
		t.Errorf("got %d pixels", buf.Pixels())
	}
}

func TestReconstruct_FromScannedBytes(t *testing.T) {
	data := []byte{
		0xff, 10, 20, 30, 255,
		0b01_11_10_10, // diff +1,0,0
		0b11_000001,   // run 2
	}
	buf, err := Reconstruct(chunk.Scan(data))
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	want := []byte{10, 20, 30, 255, 11, 20, 30, 255, 11, 20, 30, 255, 11, 20, 30, 255}
	if !bytes.Equal(buf.Pix, want) {
		t.Errorf("got %v, want %v", buf.Pix, want)
	}
}
