package cmd

import (
	"fmt"

	"github.com/Maidang1/pixel-picture/internal/encoder"
	"github.com/Maidang1/pixel-picture/internal/pipeline"
	"github.com/Maidang1/pixel-picture/internal/pixelart"
	"github.com/Maidang1/pixel-picture/internal/profile"
	"github.com/spf13/pflag"
)

// renderFlags are the render settings shared by render and build. Flags the
// user did not set fall back to the selected preset.
type renderFlags struct {
	preset   string
	weights  string
	block    int
	stride   int
	mode     string
	color    bool
	format   string
	quality  int
	scale    int
	blur     float64
	maxWidth int
}

func (f *renderFlags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.preset, "preset", "p", profile.DefaultName, "render preset (see: pixelpic presets)")
	fs.StringVar(&f.weights, "weights", "", `luminance weights "r,g,b" (not normalised)`)
	fs.IntVarP(&f.block, "block", "b", 0, "block (painted square) size in px")
	fs.IntVarP(&f.stride, "stride", "s", 0, "sample spacing in px")
	fs.StringVar(&f.mode, "mode", "", "colour mode: monochrome or banded")
	fs.BoolVar(&f.color, "color", false, "shorthand for --mode banded")
	fs.StringVarP(&f.format, "format", "f", "", "output format: png, jpeg, webp, avif, rgba.zst")
	fs.IntVarP(&f.quality, "quality", "q", 0, "quality 1-100 for lossy formats (0 = preset default)")
	fs.IntVar(&f.scale, "scale", 1, "nearest-neighbour upscale factor for the output")
	fs.Float64Var(&f.blur, "blur", 0, "Gaussian blur sigma applied before sampling")
	fs.IntVar(&f.maxWidth, "max-width", 0, "downscale sources wider than this before sampling (0 = off)")
}

// options merges the preset with explicitly set flags.
func (f *renderFlags) options(fs *pflag.FlagSet) (pipeline.Options, error) {
	p := profile.Get(f.preset)
	if f.preset != "" && !profile.Known(f.preset) {
		logVerbose("unknown preset %q, using %s settings", f.preset, profile.DefaultName)
	}

	opts := pipeline.Options{
		Config:   p.Config(),
		Format:   p.Format,
		Quality:  p.Quality,
		Scale:    f.scale,
		Blur:     f.blur,
		MaxWidth: f.maxWidth,
	}

	if fs.Changed("weights") {
		w, err := pixelart.ParseWeights(f.weights)
		if err != nil {
			return opts, err
		}
		opts.Config.Weights = w
	}
	if fs.Changed("block") {
		opts.Config.BlockSize = f.block
	}
	if fs.Changed("stride") {
		opts.Config.SampleStride = f.stride
	}
	if f.color {
		opts.Config.Mode = pixelart.Banded
	}
	if fs.Changed("mode") {
		if f.color {
			return opts, fmt.Errorf("--mode and --color are mutually exclusive")
		}
		m, err := pixelart.ParseMode(f.mode)
		if err != nil {
			return opts, err
		}
		opts.Config.Mode = m
	}
	if fs.Changed("format") {
		opts.Format = encoder.NormalizeFormat(f.format)
	}
	if f.quality > 0 {
		opts.Quality = f.quality
	}
	if f.blur < 0 {
		return opts, fmt.Errorf("--blur must not be negative")
	}

	if err := opts.Config.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// presetName is the name recorded for the run.
func (f *renderFlags) presetName() string {
	return profile.Get(f.preset).Name
}
