package pixelart

import (
	"image/color"

	"github.com/Maidang1/pixel-picture/internal/raster"
)

// FillBlock paints c over [x, x+size) × [y, y+size), clipped to dst.
// Pixels outside dst are dropped.
func FillBlock(dst *raster.Raster, x, y, size int, c color.NRGBA) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+size, dst.Width), min(y+size, dst.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	px := [4]byte{c.R, c.G, c.B, c.A}
	for yy := y0; yy < y1; yy++ {
		row := dst.Pix[dst.Offset(x0, yy):dst.Offset(x1, yy)]
		for i := 0; i < len(row); i += 4 {
			copy(row[i:i+4], px[:])
		}
	}
}
