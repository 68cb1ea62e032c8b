package cmd

import (
	"fmt"
	"os"

	"github.com/AnyUserName/qoiscope/internal/chunk"
)

// stream is a loaded input file and what the header peek found.
type stream struct {
	path   string
	data   []byte // bytes handed to the chunk scanner
	header *chunk.Header
}

// loadStream reads path. With skipHeader the 14 header bytes are cut off;
// otherwise they are scanned as chunks like everything else.
func loadStream(path string, skipHeader bool) (*stream, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	s := &stream{path: path, data: data}

	h, err := chunk.ReadHeader(data)
	if err != nil {
		logVerbose("no usable header: %v", err)
	} else {
		s.header = h
		logVerbose("header: %dx%d, %d channels, colorspace %d", h.Width, h.Height, h.Channels, h.Colorspace)
	}

	if skipHeader {
		if s.header == nil {
			return nil, fmt.Errorf("--skip-header: %s has no qoi header", path)
		}
		s.data = data[chunk.HeaderSize:]
	}
	logVerbose("input: %s (%s)", path, formatBytes(int64(len(data))))
	return s, nil
}

// resolveWidth returns the requested frame width, falling back to the
// header's width.
func (s *stream) resolveWidth(requested int) (int, error) {
	if requested > 0 {
		return requested, nil
	}
	if s.header != nil && s.header.Width > 0 {
		return int(s.header.Width), nil
	}
	return 0, fmt.Errorf("%s has no usable header; pass --width", s.path)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
