package chart

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/qoiscope/internal/chunk"
	"github.com/AnyUserName/qoiscope/internal/reconstruct"
)

func sampleStats() reconstruct.Stats {
	return reconstruct.Collect(chunk.Slice([]chunk.Chunk{
		chunk.Literal{1, 2, 3, 4},
		chunk.Run{Length: 4},
		chunk.Run{Length: 9},
		chunk.IndexRef{Index: 1},
	}))
}

func TestKindBars_SVG(t *testing.T) {
	var buf bytes.Buffer
	if err := KindBars(&buf, "chunks", sampleStats(), true); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Errorf("output is not svg")
	}
}

func TestWriteKindBars_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinds.png")
	if err := WriteKindBars(path, "chunks", sampleStats()); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestKindBars_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := KindBars(&buf, "", reconstruct.Stats{}, true); err == nil {
		t.Error("expected error for empty stats")
	}
}
