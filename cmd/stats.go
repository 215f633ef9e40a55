package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Maidang1/pixel-picture/internal/encoder"
	"github.com/Maidang1/pixel-picture/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a built output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	path, err := manifestPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), m)
	return nil
}

// manifestPath resolves a directory to the manifest inside it.
func manifestPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return filepath.Join(path, manifest.FileName), nil
	}
	return path, nil
}

func printStats(w io.Writer, m *manifest.Manifest) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Manifest version: %d\n", m.Version)
	fmt.Fprintf(w, "  Generated:        %s\n", m.GeneratedAt)
	fmt.Fprintf(w, "  Preset:           %s\n", m.Preset)
	st := m.Settings
	fmt.Fprintf(w, "  Mode:             %s  [%s]\n", st.Mode, strings.Join(st.Palette, " "))
	fmt.Fprintf(w, "  Stride / block:   %d / %d px\n", st.Stride, st.BlockSize)
	fmt.Fprintf(w, "  Weights:          %g, %g, %g\n", st.Weights[0], st.Weights[1], st.Weights[2])
	if m.BuildInfo != nil {
		fmt.Fprintf(w, "  Workers:          %d\n", m.BuildInfo.Workers)
		fmt.Fprintf(w, "  Cache hits:       %d\n", m.BuildInfo.CacheHits)
	}
	fmt.Fprintln(w)

	s := m.Stats
	fmt.Fprintf(w, "  Total assets:     %d\n", s.TotalAssets)
	fmt.Fprintf(w, "  Total variants:   %d\n", s.TotalVariants)
	fmt.Fprintf(w, "  Total samples:    %d\n", s.TotalSamples)
	fmt.Fprintf(w, "  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(w, "  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Fprintf(w, "  Output/input:     %.1f%%\n", ratio)
	}
	fmt.Fprintln(w)

	// Per-format breakdown.
	formatStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, a := range m.Assets {
		for _, v := range a.Variants {
			fs := formatStats[v.Format]
			fs.count++
			fs.bytes += v.Size
			formatStats[v.Format] = fs
		}
	}
	fmt.Fprintln(w, "  Format breakdown:")
	for _, f := range encoder.Formats() {
		if fs, ok := formatStats[f]; ok {
			fmt.Fprintf(w, "    %-8s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
		}
	}
	fmt.Fprintln(w)

	// Per-size breakdown of rendered rasters.
	sizeStats := map[[2]int]int{}
	for _, a := range m.Assets {
		sizeStats[[2]int{a.Render.Width, a.Render.Height}]++
	}
	var sizes [][2]int
	for sz := range sizeStats {
		sizes = append(sizes, sz)
	}
	sort.Slice(sizes, func(i, j int) bool {
		if sizes[i][0] != sizes[j][0] {
			return sizes[i][0] < sizes[j][0]
		}
		return sizes[i][1] < sizes[j][1]
	})
	fmt.Fprintln(w, "  Raster sizes:")
	for _, sz := range sizes {
		fmt.Fprintf(w, "    %5dx%-5d  %4d assets\n", sz[0], sz[1], sizeStats[sz])
	}

	// Warnings.
	var warnings []string
	for key, a := range m.Assets {
		if len(a.Variants) == 0 {
			warnings = append(warnings, fmt.Sprintf("asset %q has no variants", key))
		}
		if a.Render.Samples == 0 {
			warnings = append(warnings, fmt.Sprintf("asset %q painted no samples", key))
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Warnings (%d):\n", len(warnings))
		for _, msg := range warnings {
			fmt.Fprintf(w, "    ⚠ %s\n", msg)
		}
	}
	fmt.Fprintln(w)
}
