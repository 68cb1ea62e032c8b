package cmd

import (
	"fmt"

	"github.com/AnyUserName/qoiscope/internal/chunk"
	"github.com/AnyUserName/qoiscope/internal/reconstruct"
	"github.com/spf13/cobra"
)

var (
	verifySkip       int
	verifyLimit      int
	verifySkipHeader bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file.qoi>",
	Short: "Check that every index reference reads a slot holding a matching color",
	Long: `Reconstructs the stream and reports index chunks whose cache slot holds a
color that does not hash to the slot. Inside one pass that only happens
when a slot is read before anything was stored in it, which points at an
encoder bug or a lead-in discard that cut through the cache history.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().IntVarP(&verifySkip, "skip", "k", 0, "chunks to discard before verifying")
	verifyCmd.Flags().IntVar(&verifyLimit, "limit", 20, "maximum anomalies to list (0 = all)")
	verifyCmd.Flags().BoolVar(&verifySkipHeader, "skip-header", false, "strip the 14-byte qoi header before scanning")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(_ *cobra.Command, args []string) error {
	s, err := loadStream(args[0], verifySkipHeader)
	if err != nil {
		return err
	}

	r, err := reconstruct.Audit(reconstruct.Discard(chunk.Scan(s.data), verifySkip))
	if err != nil {
		return fmt.Errorf("audit: %w", err)
	}

	if len(r.Anomalies) == 0 {
		fmt.Printf("  ✓ %d chunks, %d pixels, %d index references consistent\n", r.Chunks, r.Pixels, r.IndexRefs)
		return nil
	}

	fmt.Printf("  ✗ %d of %d index references read mismatched slots:\n", len(r.Anomalies), r.IndexRefs)
	for i, a := range r.Anomalies {
		if verifyLimit > 0 && i == verifyLimit {
			fmt.Printf("    … %d more\n", len(r.Anomalies)-verifyLimit)
			break
		}
		c := a.Color
		fmt.Printf("    • chunk %d (pixel %d): slot %d holds (%d,%d,%d,%d) hashing to %d\n",
			a.Ordinal+max(verifySkip, 0), a.Pixel, a.Index, c.R, c.G, c.B, c.A, a.Hash)
	}
	return fmt.Errorf("verification failed with %d anomalies", len(r.Anomalies))
}
