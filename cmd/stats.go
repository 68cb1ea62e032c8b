package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/qoiscope/internal/chart"
	"github.com/AnyUserName/qoiscope/internal/chunk"
	"github.com/AnyUserName/qoiscope/internal/reconstruct"
	"github.com/spf13/cobra"
)

var (
	statsSkip       int
	statsChart      string
	statsJSON       bool
	statsSkipHeader bool
)

var statsCmd = &cobra.Command{
	Use:   "stats <file.qoi>",
	Short: "Display chunk statistics for a stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVarP(&statsSkip, "skip", "k", 0, "chunks to discard before counting")
	statsCmd.Flags().StringVar(&statsChart, "chart", "", "write a per-kind bar chart (.svg or .png)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print statistics as JSON")
	statsCmd.Flags().BoolVar(&statsSkipHeader, "skip-header", false, "strip the 14-byte qoi header before scanning")
	rootCmd.AddCommand(statsCmd)
}

// statsReport is the JSON shape of the stats command.
type statsReport struct {
	Source     string                           `json:"source"`
	Skip       int                              `json:"skip"`
	Bytes      int                              `json:"bytes"`
	Header     *chunk.Header                    `json:"header,omitempty"`
	Chunks     int                              `json:"chunks"`
	Pixels     int                              `json:"pixels"`
	LongestRun int                              `json:"longest_run"`
	Kinds      map[string]reconstruct.KindStats `json:"kinds"`
}

func runStats(_ *cobra.Command, args []string) error {
	s, err := loadStream(args[0], statsSkipHeader)
	if err != nil {
		return err
	}

	st := reconstruct.Collect(reconstruct.Discard(chunk.Scan(s.data), statsSkip))

	if statsChart != "" {
		title := fmt.Sprintf("%s (skip %d)", filepath.Base(s.path), statsSkip)
		if err := chart.WriteKindBars(statsChart, title, st); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		logVerbose("chart: %s", statsChart)
	}

	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(statsReport{
			Source:     s.path,
			Skip:       statsSkip,
			Bytes:      len(s.data),
			Header:     s.header,
			Chunks:     st.Chunks,
			Pixels:     st.Pixels,
			LongestRun: st.LongestRun,
			Kinds:      st.KindNames(),
		})
	}

	printStats(s, st)
	return nil
}

func printStats(s *stream, st reconstruct.Stats) {
	fmt.Println()
	fmt.Printf("  Source:       %s (%s)\n", s.path, formatBytes(int64(len(s.data))))
	if h := s.header; h != nil {
		fmt.Printf("  Header:       %dx%d, %d channels, colorspace %d\n", h.Width, h.Height, h.Channels, h.Colorspace)
		if want := int(h.Width) * int(h.Height); want > 0 {
			fmt.Printf("  Coverage:     %d of %d header pixels (%.1f%%)\n",
				st.Pixels, want, float64(st.Pixels)/float64(want)*100)
		}
	} else {
		fmt.Println("  Header:       none")
	}
	fmt.Printf("  Skipped:      %d chunks\n", statsSkip)
	fmt.Printf("  Chunks:       %d\n", st.Chunks)
	fmt.Printf("  Pixels:       %d\n", st.Pixels)
	fmt.Printf("  Longest run:  %d\n", st.LongestRun)
	fmt.Println()

	fmt.Println("  Kind breakdown:")
	for _, k := range chunk.Kinds {
		ks, ok := st.ByKind[k]
		if !ok {
			continue
		}
		share := float64(0)
		if st.Chunks > 0 {
			share = float64(ks.Chunks) / float64(st.Chunks) * 100
		}
		fmt.Printf("    %-6s  %8d chunks  %9d pixels  %5.1f%%\n", k, ks.Chunks, ks.Pixels, share)
	}
	fmt.Println()
}
