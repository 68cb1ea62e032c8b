package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the length of the QOI file header in bytes.
const HeaderSize = 14

// Magic opens every QOI file.
const Magic = "qoif"

var (
	ErrShortHeader = errors.New("qoi header is 14 bytes long")
	ErrBadMagic    = errors.New("missing qoi magic bytes")
)

// Header is the QOI file header. Only the tooling reads it; reconstruction
// never depends on it.
type Header struct {
	Width      uint32
	Height     uint32
	Channels   uint8
	Colorspace uint8
}

// ReadHeader peeks the header at the start of data.
func ReadHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w, got %d bytes", ErrShortHeader, len(data))
	}
	if string(data[:4]) != Magic {
		return nil, fmt.Errorf("%w, found %q", ErrBadMagic, data[:4])
	}
	return &Header{
		Width:      binary.BigEndian.Uint32(data[4:8]),
		Height:     binary.BigEndian.Uint32(data[8:12]),
		Channels:   data[12],
		Colorspace: data[13],
	}, nil
}
