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
	Use:   "pixelpic",
	Short: "Turn photos into blocky pixel art",
	Long: `pixelpic samples an image on a regular grid and repaints every sample
as a flat square: black/white in monochrome mode, or black/red/green/blue/white
luminance bands in banded mode.

Render a single file with "pixelpic render", or a whole directory with
"pixelpic build", which also writes a manifest of the outputs.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"pixelpic %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[pixelpic] "+format+"\n", args...)
	}
}
