package encoder

import (
	"bytes"
	"fmt"
	"image"

	"github.com/mrjoshuak/go-jpeg2000"
)

// J2KEncoder writes a lossless JPEG 2000 codestream (no JP2 wrapper).
type J2KEncoder struct{}

func (e *J2KEncoder) Format() string    { return "j2k" }
func (e *J2KEncoder) Extension() string { return "j2k" }
func (e *J2KEncoder) Lossless() bool    { return true }

func (e *J2KEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	opts := &jpeg2000.Options{
		Format:   jpeg2000.FormatJ2K,
		Lossless: true,
	}
	var buf bytes.Buffer
	if err := jpeg2000.Encode(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("j2k: %w", err)
	}
	return buf.Bytes(), nil
}
