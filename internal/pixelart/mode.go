package pixelart

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Threshold is the luminance at or below which a sample is painted black.
const Threshold = 128.0

// BandWidth is the luminance span of one colour band above Threshold.
const BandWidth = 50.0

// Mode selects how a luminance score becomes a colour.
type Mode int

const (
	// Monochrome paints black or white.
	Monochrome Mode = iota
	// Banded paints black, then red, green, blue and white for rising bands.
	Banded
)

var (
	Black = color.NRGBA{0, 0, 0, 255}
	White = color.NRGBA{255, 255, 255, 255}
	Red   = color.NRGBA{255, 0, 0, 255}
	Green = color.NRGBA{0, 255, 0, 255}
	Blue  = color.NRGBA{0, 0, 255, 255}
)

// bandColors indexes Banded colours by band; anything past the end is White.
var bandColors = [...]color.NRGBA{Red, Green, Blue}

func (m Mode) valid() bool {
	return m == Monochrome || m == Banded
}

func (m Mode) String() string {
	switch m {
	case Monochrome:
		return "monochrome"
	case Banded:
		return "banded"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts a mode name to a Mode. "mono", "bw", "color" and
// "colour" are accepted as aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monochrome", "mono", "bw":
		return Monochrome, nil
	case "banded", "color", "colour":
		return Banded, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want monochrome or banded)", s)
	}
}

// MarshalText implements encoding.TextMarshaler so modes read well in JSON.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("unknown mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Luminance is the weighted channel sum. No rounding and no clamping.
func Luminance(r, g, b uint8, w Weights) float64 {
	return w.R*float64(r) + w.G*float64(g) + w.B*float64(b)
}

// Band returns the band index of lum and whether lum is above Threshold.
// The band is only meaningful when ok is true. Every band from 3 up paints
// the same colour, so the result is capped at 3.
func Band(lum float64) (band int, ok bool) {
	if !(lum > Threshold) {
		return 0, false
	}
	f := math.Floor((lum - Threshold) / BandWidth)
	if f > float64(len(bandColors)) {
		// Keeps +Inf and huge values from overflowing the int conversion.
		f = float64(len(bandColors))
	}
	return int(f), true
}

// Color maps a luminance score to the colour painted for it in mode m.
func (m Mode) Color(lum float64) color.NRGBA {
	band, ok := Band(lum)
	if !ok {
		return Black
	}
	if m == Monochrome || band >= len(bandColors) {
		return White
	}
	return bandColors[band]
}
