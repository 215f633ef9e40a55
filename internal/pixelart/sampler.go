package pixelart

import (
	"iter"

	"github.com/Maidang1/pixel-picture/internal/raster"
)

// Sample is one grid point and the colour channels read there.
type Sample struct {
	X, Y    int
	R, G, B uint8
}

// Samples yields grid points of src every stride pixels, row-major: every x
// of a row before the next row. The sequence can be ranged over repeatedly.
// Alpha is ignored. stride must be at least 1.
func Samples(src *raster.Raster, stride int) iter.Seq[Sample] {
	return sampleRows(src, stride, 0, src.Height)
}

// sampleRows is Samples restricted to rows y in [y0, y1).
// y0 must be a multiple of stride.
func sampleRows(src *raster.Raster, stride, y0, y1 int) iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		for y := y0; y < y1; y += stride {
			row := y * src.Width * 4
			for x := 0; x < src.Width; x += stride {
				i := row + x*4
				s := Sample{X: x, Y: y, R: src.Pix[i], G: src.Pix[i+1], B: src.Pix[i+2]}
				if !yield(s) {
					return
				}
			}
		}
	}
}

// SampleCount returns how many grid points Samples yields for a w×h raster.
func SampleCount(w, h, stride int) int {
	if w <= 0 || h <= 0 || stride < 1 {
		return 0
	}
	return ((w + stride - 1) / stride) * ((h + stride - 1) / stride)
}
