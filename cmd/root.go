package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "qoiscope",
	Short: "Forensic pixel recovery for QOI streams",
	Long:  `qoiscope rebuilds raw pixels from QOI chunk streams, optionally after
discarding a lead-in of chunks, so damaged or truncated files can be
inspected from any chunk offset.

Reconstruction after a discard starts from the default decoder state, not
from a replay of the skipped chunks: colors drift until the stream's own
literals resynchronise them.`,
	Version:      version,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"qoiscope %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[qoiscope] "+format+"\n", args...)
	}
}
