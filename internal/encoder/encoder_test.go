package encoder

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testFrame() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 50), G: uint8(y * 80), B: 7, A: uint8(255 - x)})
		}
	}
	return img
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"png", "PNG", "jpg", "tif", "raw", "j2k", "bmp", "rgba.zst"} {
		if _, err := r.Get(name); err != nil {
			t.Errorf("get %q: %v", name, err)
		}
	}
	if _, err := r.Get("gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("gif: got %v", err)
	}
	if got := len(r.Available()); got != 6 {
		t.Errorf("available: %d formats", got)
	}
}

func TestPNG_Lossless(t *testing.T) {
	src := testFrame()
	data, err := (&PNGEncoder{}).Encode(src, 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	assertSamePixels(t, src, img)
}

func TestTIFF_Lossless(t *testing.T) {
	src := testFrame()
	data, err := (&TIFFEncoder{}).Encode(src, 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	assertSamePixels(t, src, img)
}

func TestBMP_Encodes(t *testing.T) {
	data, err := (&BMPEncoder{}).Encode(testFrame(), 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	cfg, err := bmp.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Width != 5 || cfg.Height != 3 {
		t.Errorf("size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestJPEG_Encodes(t *testing.T) {
	data, err := (&JPEGEncoder{}).Encode(testFrame(), 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(data) < 2 || data[0] != 0xff || data[1] != 0xd8 {
		t.Errorf("missing SOI marker")
	}
}

func TestRaw_RoundTrip(t *testing.T) {
	src := testFrame()
	data, err := (&RawEncoder{}).Encode(src, 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := DecodeRaw(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(img.Pix, src.Pix) || !img.Rect.Eq(src.Rect) {
		t.Errorf("raw dump differs")
	}
}

func TestRaw_SubImage(t *testing.T) {
	src := testFrame()
	sub := src.SubImage(image.Rect(1, 1, 3, 3))
	data, err := (&RawEncoder{}).Encode(sub, 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := DecodeRaw(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds %v", img.Bounds())
	}
	if img.NRGBAAt(0, 0) != src.NRGBAAt(1, 1) {
		t.Errorf("origin pixel: %v vs %v", img.NRGBAAt(0, 0), src.NRGBAAt(1, 1))
	}
}

func TestDecodeRaw_Corrupt(t *testing.T) {
	if _, err := DecodeRaw([]byte("not zstd")); err == nil {
		t.Error("expected error")
	}
}

func assertSamePixels(t *testing.T, want *image.NRGBA, got image.Image) {
	t.Helper()
	if !got.Bounds().Eq(want.Bounds()) {
		t.Fatalf("bounds %v, want %v", got.Bounds(), want.Bounds())
	}
	b := want.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(got.At(x, y)).(color.NRGBA)
			if c != want.NRGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, c, want.NRGBAAt(x, y))
			}
		}
	}
}
