package sweep

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/qoiscope/internal/chunk"
	"github.com/AnyUserName/qoiscope/internal/encoder"
	"github.com/AnyUserName/qoiscope/internal/frame"
	"github.com/AnyUserName/qoiscope/internal/hasher"
	"github.com/AnyUserName/qoiscope/internal/manifest"
	"github.com/AnyUserName/qoiscope/internal/reconstruct"
)

// passResult holds the outcome of one discard offset.
type passResult struct {
	pass manifest.Pass
	err  error
}

// processPass reconstructs the stream after discarding skip chunks, renders
// it and writes the frame. Each call builds its own state.
func processPass(skip int, cfg Config, enc encoder.Encoder) passResult {
	result := passResult{pass: manifest.Pass{Skip: skip, Width: cfg.Width}}

	buf, err := reconstruct.ReconstructFrom(chunk.Scan(cfg.Data), skip)
	if err != nil {
		result.err = fmt.Errorf("reconstruct: %w", err)
		return result
	}
	result.pass.Pixels = buf.Pixels()
	result.pass.Height = frame.Rows(buf, cfg.Width)
	result.pass.Digest = hasher.Digest(buf.Pix, 0)

	img, err := frame.Render(buf, frame.Options{
		Width:  cfg.Width,
		Opaque: cfg.Opaque,
		Scale:  cfg.Profile.Scale,
	})
	if errors.Is(err, frame.ErrEmptyFrame) {
		// Nothing left to draw at this offset; recorded without a file.
		return result
	}
	if err != nil {
		result.err = fmt.Errorf("render: %w", err)
		return result
	}

	data, err := enc.Encode(img, 0)
	if err != nil {
		result.err = fmt.Errorf("encode %s: %w", enc.Format(), err)
		return result
	}

	// Filename: skip-<k>.<digest8>.ext
	fileName := fmt.Sprintf("skip-%d.%s.%s", skip, result.pass.Digest[:hasher.ShortLen], enc.Extension())
	if err := os.WriteFile(filepath.Join(cfg.OutputDir, fileName), data, 0o644); err != nil {
		result.err = fmt.Errorf("write %s: %w", fileName, err)
		return result
	}
	result.pass.Path = fileName
	result.pass.Size = int64(len(data))
	return result
}
