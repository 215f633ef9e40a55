package pipeline

import (
	"fmt"
	"image"

	"github.com/Maidang1/pixel-picture/internal/encoder"
	"github.com/Maidang1/pixel-picture/internal/imageio"
	"github.com/Maidang1/pixel-picture/internal/pixelart"
	"github.com/Maidang1/pixel-picture/internal/raster"
)

// Options are the per-image settings shared by single renders and builds.
type Options struct {
	Config   pixelart.Config
	MaxWidth int     // fit source to this width before sampling (0 = off)
	Blur     float64 // Gaussian sigma applied before sampling (0 = off)
	Scale    int     // nearest-neighbour upscale of the output (<= 1 = off)
	Format   string  // output format, "" = png
	Quality  int     // lossy formats only
	Workers  int     // transform goroutines per image (0 = NumCPU)
}

// Rendered is one processed image.
type Rendered struct {
	Raster  *raster.Raster // transform output, before upscaling
	Image   image.Image    // what was encoded
	Data    []byte
	Encoder encoder.Encoder
	Samples int
}

// RenderImage runs fit → blur → transform → upscale → encode on img.
// cache may be nil.
func RenderImage(img image.Image, opts Options, registry *encoder.Registry, cache *pixelart.Cache) (*Rendered, error) {
	enc, err := registry.Resolve(opts.Format)
	if err != nil {
		return nil, err
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	img = imageio.FitWidth(img, opts.MaxWidth)
	img = imageio.Blur(img, opts.Blur)
	src := raster.FromImage(img)

	var out *raster.Raster
	if cache != nil {
		out, err = cache.Transform(src, opts.Config, opts.Workers)
	} else {
		out, err = pixelart.TransformParallel(src, opts.Config, opts.Workers)
	}
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}

	final, err := imageio.Upscale(out.Image(), opts.Scale)
	if err != nil {
		return nil, err
	}

	data, err := enc.Encode(final, opts.Quality)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", enc.Format(), err)
	}

	return &Rendered{
		Raster:  out,
		Image:   final,
		Data:    data,
		Encoder: enc,
		Samples: pixelart.SampleCount(out.Width, out.Height, opts.Config.SampleStride),
	}, nil
}
