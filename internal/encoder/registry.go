package encoder

import (
	"fmt"
	"strings"
)

// order is the display order of formats, lossless first.
var order = []string{"png", "tiff", "bmp", "j2k", "rgba.zst", "jpeg"}

// Registry maps format names to encoders.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry holding every built-in encoder.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}

	all := []Encoder{
		&PNGEncoder{},
		&TIFFEncoder{},
		&BMPEncoder{},
		&J2KEncoder{},
		&RawEncoder{},
		&JPEGEncoder{},
	}
	for _, enc := range all {
		r.encoders[enc.Format()] = enc
	}
	// Aliases.
	r.encoders["jpg"] = r.encoders["jpeg"]
	r.encoders["tif"] = r.encoders["tiff"]
	r.encoders["raw"] = r.encoders["rgba.zst"]

	return r
}

// Get returns the encoder for format.
func (r *Registry) Get(format string) (Encoder, error) {
	enc, ok := r.encoders[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownFormat, format, strings.Join(r.Available(), ", "))
	}
	return enc, nil
}

// Available returns the canonical format names.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range order {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of the registered encoders.
func (r *Registry) String() string {
	return fmt.Sprintf("encoders: %s", strings.Join(r.Available(), ", "))
}
