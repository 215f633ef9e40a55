package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Maidang1/pixel-picture/internal/encoder"
	"github.com/Maidang1/pixel-picture/internal/imageio"
	"github.com/Maidang1/pixel-picture/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	renderOut     string
	renderWorkers int
	renderFlagSet renderFlags
)

var renderCmd = &cobra.Command{
	Use:   "render <input>",
	Short: "Render one image as pixel art",
	Long: `Decodes an image (png, jpeg, gif, bmp, tiff, webp), renders it and writes
the result next to the input as pixel-<name>.<ext> unless --out is given.
Use --out - to write the encoded image to stdout.

rgba.zst output also gets a <output>.json sidecar describing the raster.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default pixel-<name>.<ext> beside the input)")
	renderCmd.Flags().IntVarP(&renderWorkers, "workers", "w", 0, "transform goroutines (0 = NumCPU)")
	renderFlagSet.bind(renderCmd.Flags())
	rootCmd.AddCommand(renderCmd)
}

// sidecar describes a raw rgba.zst output.
type sidecar struct {
	Width   int        `json:"width"`
	Height  int        `json:"height"`
	Format  string     `json:"format"`
	Mode    string     `json:"mode"`
	Stride  int        `json:"stride"`
	Block   int        `json:"block_size"`
	Weights [3]float64 `json:"weights"`
	Source  string     `json:"source"`
}

func runRender(cmd *cobra.Command, args []string) error {
	input := args[0]
	start := time.Now()

	opts, err := renderFlagSet.options(cmd.Flags())
	if err != nil {
		return err
	}
	opts.Workers = renderWorkers

	logVerbose("input:   %s", input)
	logVerbose("preset:  %s (stride=%d, block=%d, mode=%s, weights=%s)",
		renderFlagSet.presetName(), opts.Config.SampleStride, opts.Config.BlockSize,
		opts.Config.Mode, opts.Config.Weights)

	r, err := renderFile(input, opts)
	if err != nil {
		return err
	}

	out := renderOut
	if out == "-" {
		_, err := cmd.OutOrStdout().Write(r.Data)
		return err
	}
	if out == "" {
		out = defaultOutputPath(input, r.Encoder.Extension())
	}

	if err := os.WriteFile(out, r.Data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if r.Encoder.Format() == "rgba.zst" {
		if err := writeSidecar(out, input, r, opts); err != nil {
			return err
		}
	}

	printRenderReport(cmd.OutOrStdout(), input, out, r, time.Since(start))
	return nil
}

// renderFile decodes input and renders it with opts.
func renderFile(input string, opts pipeline.Options) (*pipeline.Rendered, error) {
	img, err := imageio.Open(input)
	if err != nil {
		return nil, err
	}
	registry := encoder.NewRegistry()
	logVerbose("%s", registry.String())

	r, err := pipeline.RenderImage(img, opts, registry, nil)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", input, err)
	}
	return r, nil
}

// defaultOutputPath returns pixel-<name>.<ext> in the input's directory.
func defaultOutputPath(input, ext string) string {
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(input), "pixel-"+name+"."+ext)
}

func writeSidecar(out, input string, r *pipeline.Rendered, opts pipeline.Options) error {
	b := r.Image.Bounds()
	w := opts.Config.Weights
	meta := sidecar{
		Width:   b.Dx(),
		Height:  b.Dy(),
		Format:  "RGBA8",
		Mode:    opts.Config.Mode.String(),
		Stride:  opts.Config.SampleStride,
		Block:   opts.Config.BlockSize,
		Weights: [3]float64{w.R, w.G, w.B},
		Source:  filepath.Base(input),
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(out+".json", append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	return nil
}

func printRenderReport(w io.Writer, input, out string, r *pipeline.Rendered, elapsed time.Duration) {
	b := r.Image.Bounds()
	fmt.Fprintf(w, "Rendered %s → %s\n", input, out)
	fmt.Fprintf(w, "  Size:    %dx%d (%s)\n", b.Dx(), b.Dy(), r.Encoder.Format())
	fmt.Fprintf(w, "  Samples: %d\n", r.Samples)
	fmt.Fprintf(w, "  Output:  %s\n", formatBytes(int64(len(r.Data))))
	fmt.Fprintf(w, "  Time:    %s\n", elapsed.Round(time.Millisecond))
}
