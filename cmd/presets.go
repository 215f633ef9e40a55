package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Maidang1/pixel-picture/internal/profile"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in render presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printPresets(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func printPresets(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTRIDE\tBLOCK\tMODE\tFORMAT\tDESCRIPTION")
	for _, name := range profile.Names() {
		p := profile.Get(name)
		marker := ""
		if name == profile.DefaultName {
			marker = " (default)"
		}
		fmt.Fprintf(tw, "%s%s\t%d\t%d\t%s\t%s\t%s\n",
			p.Name, marker, p.Stride, p.BlockSize, p.Mode, p.Format, p.Description)
	}
	return tw.Flush()
}
