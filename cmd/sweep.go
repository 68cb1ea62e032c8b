package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/AnyUserName/qoiscope/internal/manifest"
	"github.com/AnyUserName/qoiscope/internal/profile"
	"github.com/AnyUserName/qoiscope/internal/sweep"
	"github.com/spf13/cobra"
)

var (
	sweepOutDir     string
	sweepProfile    string
	sweepFrom       int
	sweepCount      int
	sweepStep       int
	sweepWidth      int
	sweepFormat     string
	sweepScale      int
	sweepWorkers    int
	sweepKeepAlpha  bool
	sweepSkipHeader bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep <file.qoi>",
	Short: "Reconstruct at a series of discard offsets and write one frame per offset",
	Long: `Runs independent reconstruction passes for skip = from, from+step, ...
in parallel. Each frame is written as skip-<k>.<digest>.<ext> and listed
in qoiscope.manifest.json together with its pixel count and digest, so
offsets that produce identical pixels are easy to spot.`,
	Args: cobra.ExactArgs(1),
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().StringVarP(&sweepOutDir, "out", "o", "./qoiscope_out", "output directory")
	sweepCmd.Flags().StringVarP(&sweepProfile, "profile", "p", "fine", "sweep profile (single, fine, coarse)")
	sweepCmd.Flags().IntVar(&sweepFrom, "from", 0, "first discard offset")
	sweepCmd.Flags().IntVar(&sweepCount, "count", 0, "number of passes (0 = profile default)")
	sweepCmd.Flags().IntVar(&sweepStep, "step", 0, "offset increment (0 = profile default)")
	sweepCmd.Flags().IntVarP(&sweepWidth, "width", "w", 0, "frame width in pixels (0 = header width)")
	sweepCmd.Flags().StringVarP(&sweepFormat, "format", "f", "", "output format (empty = profile default)")
	sweepCmd.Flags().IntVar(&sweepScale, "scale", 0, "nearest-neighbour upscale (0 = profile default)")
	sweepCmd.Flags().IntVarP(&sweepWorkers, "workers", "j", 0, "parallel passes (0 = NumCPU)")
	sweepCmd.Flags().BoolVar(&sweepKeepAlpha, "keep-alpha", false, "keep reconstructed alpha")
	sweepCmd.Flags().BoolVar(&sweepSkipHeader, "skip-header", false, "strip the 14-byte qoi header before scanning")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	start := time.Now()

	s, err := loadStream(args[0], sweepSkipHeader)
	if err != nil {
		return err
	}
	width, err := s.resolveWidth(sweepWidth)
	if err != nil {
		return err
	}

	prof := profile.Get(sweepProfile)
	if sweepCount > 0 {
		prof.Count = sweepCount
	}
	if sweepStep > 0 {
		prof.Step = sweepStep
	}
	if sweepFormat != "" {
		prof.Format = sweepFormat
	}
	if sweepScale > 0 {
		prof.Scale = sweepScale
	}

	absOutput, err := filepath.Abs(sweepOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (step=%d, count=%d, format=%s)", prof.Name, prof.Step, prof.Count, prof.Format)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	p := sweep.New(sweep.Config{
		Source:    filepath.Base(s.path),
		Data:      s.data,
		From:      sweepFrom,
		Profile:   prof,
		Width:     width,
		OutputDir: absOutput,
		Workers:   sweepWorkers,
		Opaque:    !sweepKeepAlpha,
		Verbose:   verbose,
	})
	m, runErr := p.Run(ctx)
	if m == nil {
		return fmt.Errorf("sweep: %w", runErr)
	}

	// Write whatever finished, even after an interrupt.
	manifestPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	printSweepReport(m, time.Since(start))

	if runErr != nil {
		return fmt.Errorf("sweep: %w", runErr)
	}
	return nil
}

func printSweepReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	st := m.Stats
	fmt.Printf("  Passes:    %d (%d failed, %d empty)\n", st.TotalPasses, st.FailedPasses, st.EmptyPasses)
	fmt.Printf("  Distinct:  %d frames\n", st.DistinctFrames)
	fmt.Printf("  Output:    %s\n", formatBytes(st.TotalBytes))
	fmt.Printf("  Time:      %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:   %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	fmt.Println("  skip      pixels    rows  digest            file")
	for _, p := range m.Passes {
		if p.Error != "" {
			fmt.Printf("  %-8d  error: %s\n", p.Skip, p.Error)
			continue
		}
		path := p.Path
		if path == "" {
			path = "-"
		}
		fmt.Printf("  %-8d  %8d  %6d  %-16s  %s\n", p.Skip, p.Pixels, p.Height, p.Digest, path)
	}
	fmt.Println()
	fmt.Printf("  Manifest:  %s\n", manifest.FileName)
	fmt.Println()
}
