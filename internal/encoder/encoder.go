package encoder

import (
	"errors"
	"image"
)

// ErrUnknownFormat is returned for format names with no registered encoder.
var ErrUnknownFormat = errors.New("unknown output format")

// Encoder writes a reconstructed frame in one output format.
type Encoder interface {
	// Format returns the format name used on the command line (e.g. "png", "j2k").
	Format() string

	// Encode converts the frame to bytes. quality (1-100) is ignored by
	// lossless formats.
	Encode(img image.Image, quality int) ([]byte, error)

	// Lossless reports whether the output preserves every channel byte.
	Lossless() bool

	// Extension returns the file extension without dot.
	Extension() string
}
