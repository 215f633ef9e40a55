// Package raster holds the dense 8-bit RGBA buffer that flows between image
// decoding, the pixel-art transform and the encoders.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Raster is a row-major RGBA image. Pixels are stored as interleaved
// R,G,B,A bytes, non-premultiplied, 4 bytes per pixel.
type Raster struct {
	Width  int
	Height int
	Pix    []byte // len = Width * Height * 4
}

// New allocates a w×h raster filled with opaque black.
func New(w, h int) *Raster {
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("raster: negative dimensions %dx%d", w, h))
	}
	pix := make([]byte, w*h*4)
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 0xff
	}
	return &Raster{Width: w, Height: h, Pix: pix}
}

// Validate reports whether the buffer length matches the declared dimensions.
func (r *Raster) Validate() error {
	if r == nil {
		return fmt.Errorf("nil raster")
	}
	if r.Width < 0 || r.Height < 0 {
		return fmt.Errorf("negative dimensions %dx%d", r.Width, r.Height)
	}
	if r.Width != 0 && r.Height > math.MaxInt/4/r.Width {
		return fmt.Errorf("dimensions %dx%d overflow the buffer size", r.Width, r.Height)
	}
	if want := r.Width * r.Height * 4; len(r.Pix) != want {
		return fmt.Errorf("buffer length %d, want %d for %dx%d", len(r.Pix), want, r.Width, r.Height)
	}
	return nil
}

// Offset returns the index of the first byte of pixel (x, y).
func (r *Raster) Offset(x, y int) int {
	return (y*r.Width + x) * 4
}

// At returns the pixel at (x, y). Out-of-range coordinates panic.
func (r *Raster) At(x, y int) color.NRGBA {
	i := r.Offset(x, y)
	p := r.Pix[i : i+4 : i+4]
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Set writes c at (x, y). Out-of-range coordinates panic.
func (r *Raster) Set(x, y int, c color.NRGBA) {
	i := r.Offset(x, y)
	p := r.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// Clone returns a deep copy.
func (r *Raster) Clone() *Raster {
	pix := make([]byte, len(r.Pix))
	copy(pix, r.Pix)
	return &Raster{Width: r.Width, Height: r.Height, Pix: pix}
}

// Image wraps the raster as an *image.NRGBA sharing the same buffer.
func (r *Raster) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.Pix,
		Stride: r.Width * 4,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}

// FromImage copies any image into a fresh raster anchored at (0,0).
// *image.NRGBA sources with a tight stride are copied directly; everything
// else is converted through x/image/draw.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := &Raster{Width: w, Height: h, Pix: make([]byte, w*h*4)}
	if w == 0 || h == 0 {
		return out
	}

	if src, ok := img.(*image.NRGBA); ok && src.Stride == w*4 {
		i := src.PixOffset(b.Min.X, b.Min.Y)
		copy(out.Pix, src.Pix[i:i+w*h*4])
		return out
	}

	draw.Draw(out.Image(), image.Rect(0, 0, w, h), img, b.Min, draw.Src)
	return out
}
