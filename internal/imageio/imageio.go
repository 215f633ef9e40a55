// Package imageio decodes source images and applies the optional pre- and
// post-processing steps around the pixel-art transform.
package imageio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MaxScale bounds the export upscaling factor.
const MaxScale = 16

// Open decodes the image at path, applying EXIF orientation.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return img, nil
}

// Decode reads an image from r, applying EXIF orientation.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// FitWidth downsizes img so it is at most maxWidth pixels wide, keeping the
// aspect ratio. Images already narrow enough (or maxWidth <= 0) are returned
// unchanged.
func FitWidth(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := int(float64(b.Dy()) * float64(maxWidth) / float64(b.Dx()))
	if h < 1 {
		h = 1
	}
	return imaging.Resize(img, maxWidth, h, imaging.Lanczos)
}

// Blur applies a Gaussian blur with the given sigma. sigma <= 0 is a no-op.
func Blur(img image.Image, sigma float64) image.Image {
	if sigma <= 0 {
		return img
	}
	g := gift.New(gift.GaussianBlur(float32(sigma)))
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// Upscale enlarges img by an integer factor with nearest-neighbour
// sampling so block edges stay sharp. factor <= 1 is a no-op.
func Upscale(img image.Image, factor int) (image.Image, error) {
	if factor <= 1 {
		return img, nil
	}
	if factor > MaxScale {
		return nil, fmt.Errorf("scale %d exceeds maximum %d", factor, MaxScale)
	}
	b := img.Bounds()
	if b.Empty() {
		return img, nil
	}
	w, h := uint(b.Dx()*factor), uint(b.Dy()*factor)
	return resize.Resize(w, h, img, resize.NearestNeighbor), nil
}
