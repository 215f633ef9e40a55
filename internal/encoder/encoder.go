package encoder

import (
	"image"
)

// Encoder writes a rendered image in one output format.
type Encoder interface {
	// Format returns the output format name (e.g. "png", "jpeg", "rgba.zst").
	Format() string

	// Encode converts the image to bytes. quality (1-100) is ignored by
	// lossless formats.
	Encode(img image.Image, quality int) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	// External encoders (cwebp, avifenc) may not be installed.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}

// DefaultQuality is used when a lossy encoder receives quality outside 1-100.
const DefaultQuality = 90

func clampQuality(q int) int {
	if q <= 0 || q > 100 {
		return DefaultQuality
	}
	return q
}
