// Package pixelart turns a continuous-tone raster into blocky pixel art.
//
// The source is sampled on a square grid. Each sample's weighted luminance
// picks a colour (black/white, or black/red/green/blue/white in banded mode)
// and a flat square of that colour is painted at the sample position on an
// opaque black canvas. Blocks may overlap (later samples win) or leave gaps.
package pixelart

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Maidang1/pixel-picture/internal/raster"
)

// Transform renders src with cfg into a freshly allocated raster of the same
// size. It returns ErrInvalidRaster or ErrInvalidConfig before allocating
// anything when the inputs are malformed.
func Transform(src *raster.Raster, cfg Config) (*raster.Raster, error) {
	if err := check(src, cfg); err != nil {
		return nil, err
	}
	out := raster.New(src.Width, src.Height)
	paint(out, src, cfg, 0, src.Height)
	return out, nil
}

// TransformParallel produces the same output as Transform, splitting the
// sample rows across up to workers goroutines. Rows are only split when
// blocks cannot overlap (BlockSize <= SampleStride); otherwise the paint
// order matters and the call runs sequentially.
func TransformParallel(src *raster.Raster, cfg Config, workers int) (*raster.Raster, error) {
	if err := check(src, cfg); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	out := raster.New(src.Width, src.Height)

	rows := 0
	if src.Height > 0 {
		rows = (src.Height + cfg.SampleStride - 1) / cfg.SampleStride
	}
	if workers == 1 || rows < 2 || cfg.BlockSize > cfg.SampleStride {
		paint(out, src, cfg, 0, src.Height)
		return out, nil
	}
	workers = min(workers, rows)

	// Each band covers a contiguous run of sample rows.
	per := (rows + workers - 1) / workers
	var wg sync.WaitGroup
	for r := 0; r < rows; r += per {
		y0 := r * cfg.SampleStride
		y1 := min((r+per)*cfg.SampleStride, src.Height)
		wg.Add(1)
		go func() {
			defer wg.Done()
			paint(out, src, cfg, y0, y1)
		}()
	}
	wg.Wait()
	return out, nil
}

func check(src *raster.Raster, cfg Config) error {
	if err := src.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRaster, err)
	}
	return cfg.Validate()
}

// paint runs the sample → colour → block loop for sample rows in [y0, y1).
func paint(out, src *raster.Raster, cfg Config, y0, y1 int) {
	for s := range sampleRows(src, cfg.SampleStride, y0, y1) {
		lum := Luminance(s.R, s.G, s.B, cfg.Weights)
		FillBlock(out, s.X, s.Y, cfg.BlockSize, cfg.Mode.Color(lum))
	}
}
