package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Maidang1/pixel-picture/internal/pixelart"
	"github.com/Maidang1/pixel-picture/internal/profile"
	"github.com/spf13/cobra"
)

var (
	paletteMode   string
	paletteColor  bool
	palettePreset string
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Show the colours a mode paints and the luminance that selects each",
	Args:  cobra.NoArgs,
	RunE:  runPalette,
}

func init() {
	paletteCmd.Flags().StringVar(&paletteMode, "mode", "", "colour mode: monochrome or banded")
	paletteCmd.Flags().BoolVar(&paletteColor, "color", false, "shorthand for --mode banded")
	paletteCmd.Flags().StringVarP(&palettePreset, "preset", "p", profile.DefaultName, "take the mode from this preset")
	rootCmd.AddCommand(paletteCmd)
}

func runPalette(cmd *cobra.Command, _ []string) error {
	mode := profile.Get(palettePreset).Mode
	switch {
	case paletteColor && cmd.Flags().Changed("mode"):
		return fmt.Errorf("--mode and --color are mutually exclusive")
	case paletteColor:
		mode = pixelart.Banded
	case cmd.Flags().Changed("mode"):
		m, err := pixelart.ParseMode(paletteMode)
		if err != nil {
			return err
		}
		mode = m
	}
	return printPalette(cmd.OutOrStdout(), mode)
}

func printPalette(w io.Writer, mode pixelart.Mode) error {
	fmt.Fprintf(w, "Mode %s (threshold %g", mode, float64(pixelart.Threshold))
	if mode == pixelart.Banded {
		fmt.Fprintf(w, ", band width %g", float64(pixelart.BandWidth))
	}
	fmt.Fprintln(w, ")")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  COLOUR\tHEX\tLUMINANCE")
	for _, e := range mode.PaletteEntries() {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", e.Name, e.Hex, e.Range())
	}
	return tw.Flush()
}
