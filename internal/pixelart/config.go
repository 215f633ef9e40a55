package pixelart

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRaster is returned when a source buffer does not match its
	// declared dimensions.
	ErrInvalidRaster = errors.New("invalid raster")

	// ErrInvalidConfig is returned for a non-positive stride or block size,
	// or an unknown mode.
	ErrInvalidConfig = errors.New("invalid config")
)

// Weights are the per-channel luminance coefficients. They are used as-is:
// no clamping and no renormalisation, so a sum above 1 pushes luminance past
// 255 on purpose.
type Weights struct {
	R, G, B float64
}

// DefaultWeights are the Rec. 601 luma coefficients.
var DefaultWeights = Weights{R: 0.299, G: 0.587, B: 0.114}

// String formats the weights the way ParseWeights reads them.
func (w Weights) String() string {
	return fmt.Sprintf("%g,%g,%g", w.R, w.G, w.B)
}

// ParseWeights reads "r,g,b" into Weights.
func ParseWeights(s string) (Weights, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Weights{}, fmt.Errorf("weights %q: want 3 comma-separated values", s)
	}
	var v [3]float64
	for i, p := range parts {
		if _, err := fmt.Sscan(strings.TrimSpace(p), &v[i]); err != nil {
			return Weights{}, fmt.Errorf("weights %q: parse %q: %w", s, p, err)
		}
	}
	return Weights{R: v[0], G: v[1], B: v[2]}, nil
}

// Config is the full parameter set of one transform call.
type Config struct {
	Weights      Weights
	SampleStride int // distance between sample points on both axes
	BlockSize    int // edge length of each painted square
	Mode         Mode
}

// DefaultConfig mirrors the classic look: stride 5, 3px blocks, two tones.
func DefaultConfig() Config {
	return Config{
		Weights:      DefaultWeights,
		SampleStride: 5,
		BlockSize:    3,
		Mode:         Monochrome,
	}
}

// Validate checks the config preconditions.
func (c Config) Validate() error {
	if c.SampleStride < 1 {
		return fmt.Errorf("%w: sample stride %d < 1", ErrInvalidConfig, c.SampleStride)
	}
	if c.BlockSize < 1 {
		return fmt.Errorf("%w: block size %d < 1", ErrInvalidConfig, c.BlockSize)
	}
	if !c.Mode.valid() {
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidConfig, int(c.Mode))
	}
	return nil
}
