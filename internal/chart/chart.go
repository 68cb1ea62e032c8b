package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/AnyUserName/qoiscope/internal/chunk"
	"github.com/AnyUserName/qoiscope/internal/reconstruct"
)

// KindBars renders a bar chart of chunk counts per variant. svg selects SVG
// output, otherwise PNG.
func KindBars(w io.Writer, title string, s reconstruct.Stats, svg bool) error {
	var bars []gochart.Value
	for _, k := range chunk.Kinds {
		bars = append(bars, gochart.Value{
			Label: k.String(),
			Value: float64(s.ByKind[k].Chunks),
		})
	}
	if s.Chunks == 0 {
		return fmt.Errorf("no chunks to chart")
	}

	graph := gochart.BarChart{
		Title:    title,
		Height:   400,
		Width:    900,
		BarWidth: 60,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		Bars: bars,
	}
	if svg {
		return graph.Render(gochart.SVG, w)
	}
	return graph.Render(gochart.PNG, w)
}

// WriteKindBars writes the chart to path; the extension picks the format.
func WriteKindBars(path, title string, s reconstruct.Stats) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	svg := strings.EqualFold(filepath.Ext(path), ".svg")
	if err := KindBars(fh, title, s, svg); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
