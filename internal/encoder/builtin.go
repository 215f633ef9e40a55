package encoder

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/Maidang1/pixel-picture/internal/raster"
)

// PNGEncoder writes PNG, the default output. Renders with at most 256
// distinct colours are stored as an indexed image, which covers every
// unscaled or nearest-neighbour scaled pixel-art output.
type PNGEncoder struct{}

var pngWriter = &png.Encoder{CompressionLevel: png.BestCompression}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }
func (e *PNGEncoder) Available() bool   { return true }

func (e *PNGEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	if p, ok := indexed(img); ok {
		img = p
	}
	return encodeTo(func(w io.Writer) error { return pngWriter.Encode(w, img) })
}

// JPEGEncoder writes baseline JPEG. Flat blocks ring at their edges, so it
// is only used when asked for.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() string    { return "jpeg" }
func (e *JPEGEncoder) Extension() string { return "jpg" }
func (e *JPEGEncoder) Available() bool   { return true }

func (e *JPEGEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	opts := &jpeg.Options{Quality: clampQuality(quality)}
	return encodeTo(func(w io.Writer) error { return jpeg.Encode(w, img, opts) })
}

func encodeTo(write func(io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// indexed converts img to a paletted image in first-seen colour order.
// It reports false when img has more than 256 colours.
func indexed(img image.Image) (*image.Paletted, bool) {
	r := raster.FromImage(img)
	out := image.NewPaletted(image.Rect(0, 0, r.Width, r.Height), nil)
	index := make(map[color.NRGBA]uint8)

	for i := 0; i < len(r.Pix); i += 4 {
		c := color.NRGBA{r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3]}
		idx, ok := index[c]
		if !ok {
			if len(out.Palette) == 256 {
				return nil, false
			}
			idx = uint8(len(out.Palette))
			index[c] = idx
			out.Palette = append(out.Palette, c)
		}
		out.Pix[i/4] = idx
	}
	return out, true
}
