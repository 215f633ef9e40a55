package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Maidang1/pixel-picture/internal/manifest"
	"github.com/Maidang1/pixel-picture/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	buildOutDir  string
	buildWorkers int
	buildFlagSet renderFlags
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Render every image in a directory and write a manifest",
	Long: `Scans input directory for images (png, jpg, jpeg, gif, bmp, tiff, webp),
renders each one as pixel art with the selected preset and flag overrides,
and writes a manifest file describing every output.

Output filenames are content-addressed: <key>.<w>.<h>.<hash>.ext`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./pixelpic_out", "output directory")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	buildFlagSet.bind(buildCmd.Flags())
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	opts, err := buildFlagSet.options(cmd.Flags())
	if err != nil {
		return err
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("preset:  %s (stride=%d, block=%d, mode=%s)",
		buildFlagSet.presetName(), opts.Config.SampleStride, opts.Config.BlockSize, opts.Config.Mode)

	// Create output dir.
	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Run pipeline.
	p := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Preset:    buildFlagSet.presetName(),
		Options:   opts,
		Workers:   buildWorkers,
		Verbose:   verbose,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	// Write manifest.
	manifestPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBuildReport(cmd.OutOrStdout(), m, time.Since(start))
	return nil
}

func printBuildReport(w io.Writer, m *manifest.Manifest, elapsed time.Duration) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║             pixelpic build complete              ║")
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════╝")
	fmt.Fprintln(w)

	s := m.Stats
	fmt.Fprintf(w, "  Assets:      %d\n", s.TotalAssets)
	fmt.Fprintf(w, "  Samples:     %d\n", s.TotalSamples)
	fmt.Fprintf(w, "  Settings:    %s, stride %d, block %d\n", m.Settings.Mode, m.Settings.Stride, m.Settings.BlockSize)
	fmt.Fprintf(w, "  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(w, "  Output size: %s\n", formatBytes(s.TotalOutputBytes))
	fmt.Fprintf(w, "  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Fprintf(w, "  Workers:     %d  (%d cached renders reused)\n", m.BuildInfo.Workers, m.BuildInfo.CacheHits)
	}
	fmt.Fprintln(w)

	// Top 10 largest outputs.
	if len(m.Assets) > 0 {
		type assetSize struct {
			key        string
			outputSize int64
		}
		var items []assetSize
		for key, a := range m.Assets {
			var sum int64
			for _, v := range a.Variants {
				sum += v.Size
			}
			items = append(items, assetSize{key, sum})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].outputSize != items[j].outputSize {
				return items[i].outputSize > items[j].outputSize
			}
			return items[i].key < items[j].key
		})
		n := min(len(items), 10)
		fmt.Fprintf(w, "  Top %d largest outputs:\n", n)
		for _, it := range items[:n] {
			fmt.Fprintf(w, "    %-40s %8s\n", truncKey(it.key, 40), formatBytes(it.outputSize))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "  Manifest:    %s\n", manifest.FileName)
	fmt.Fprintln(w)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
