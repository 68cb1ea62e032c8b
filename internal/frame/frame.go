package frame

import (
	"errors"
	"fmt"
	"image"

	"github.com/AnyUserName/qoiscope/internal/reconstruct"
	"github.com/disintegration/imaging"
)

var (
	ErrBadWidth   = errors.New("frame width must be positive")
	ErrEmptyFrame = errors.New("not enough pixels for one row")
)

// Options controls how a flat pixel buffer is laid out as an image.
type Options struct {
	Width  int  // pixels per row
	Opaque bool // force alpha to 255
	Scale  int  // nearest-neighbour upscale factor, <= 1 keeps native size
}

// Rows returns how many complete rows of width pixels fit in buf.
func Rows(buf reconstruct.Buffer, width int) int {
	if width <= 0 {
		return 0
	}
	return buf.Pixels() / width
}

// Render lays buf out row by row. A trailing partial row is dropped.
func Render(buf reconstruct.Buffer, opts Options) (*image.NRGBA, error) {
	if opts.Width <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadWidth, opts.Width)
	}
	h := Rows(buf, opts.Width)
	if h == 0 {
		return nil, fmt.Errorf("%w: %d pixels, width %d", ErrEmptyFrame, buf.Pixels(), opts.Width)
	}

	img := image.NewNRGBA(image.Rect(0, 0, opts.Width, h))
	copy(img.Pix, buf.Pix[:opts.Width*h*4])
	if opts.Opaque {
		for i := 3; i < len(img.Pix); i += 4 {
			img.Pix[i] = 255
		}
	}

	if opts.Scale > 1 {
		return imaging.Resize(img, opts.Width*opts.Scale, h*opts.Scale, imaging.NearestNeighbor), nil
	}
	return img, nil
}
