package encoder

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/klauspost/compress/zstd"
)

// Raw dump layout before compression: width and height as big-endian
// uint32, then width*height RGBA quadruplets.
const rawHeaderSize = 8

var ErrCorruptRaw = errors.New("corrupt raw rgba dump")

var (
	zstdOnce sync.Once
	zstdEnc  *zstd.Encoder
	zstdDec  *zstd.Decoder
	zstdErr  error
)

func zstdCodecs() (*zstd.Encoder, *zstd.Decoder, error) {
	zstdOnce.Do(func() {
		zstdEnc, zstdErr = zstd.NewWriter(nil,
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		)
		if zstdErr != nil {
			return
		}
		zstdDec, zstdErr = zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	})
	return zstdEnc, zstdDec, zstdErr
}

// RawEncoder writes the frame's RGBA bytes behind a tiny dimension header,
// zstd compressed. It keeps exact channel bytes, alpha included.
type RawEncoder struct{}

func (e *RawEncoder) Format() string    { return "rgba.zst" }
func (e *RawEncoder) Extension() string { return "rgba.zst" }
func (e *RawEncoder) Lossless() bool    { return true }

func (e *RawEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	enc, _, err := zstdCodecs()
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != 4*nrgba.Rect.Dx() {
		nrgba = imaging.Clone(img)
	}
	b := nrgba.Bounds()
	src := make([]byte, rawHeaderSize, rawHeaderSize+len(nrgba.Pix))
	binary.BigEndian.PutUint32(src[0:4], uint32(b.Dx()))
	binary.BigEndian.PutUint32(src[4:8], uint32(b.Dy()))
	src = append(src, nrgba.Pix[:4*b.Dx()*b.Dy()]...)
	return enc.EncodeAll(src, nil), nil
}

// DecodeRaw reverses RawEncoder.Encode.
func DecodeRaw(data []byte) (*image.NRGBA, error) {
	_, dec, err := zstdCodecs()
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	src, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	if len(src) < rawHeaderSize {
		return nil, ErrCorruptRaw
	}
	w := int(binary.BigEndian.Uint32(src[0:4]))
	h := int(binary.BigEndian.Uint32(src[4:8]))
	if len(src)-rawHeaderSize != w*h*4 {
		return nil, fmt.Errorf("%w: %dx%d needs %d bytes, have %d", ErrCorruptRaw, w, h, w*h*4, len(src)-rawHeaderSize)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, src[rawHeaderSize:])
	return img, nil
}
