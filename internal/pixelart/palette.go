package pixelart

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteEntry describes one colour decision and the luminance range that
// selects it. Max is +Inf for the open-ended top entry.
type PaletteEntry struct {
	Name string  `json:"name"`
	Hex  string  `json:"hex"`
	Min  float64 `json:"-"` // exclusive, except -Inf for black
	Max  float64 `json:"-"` // inclusive for black, exclusive above it
}

// Range renders the luminance interval in interval notation.
func (e PaletteEntry) Range() string {
	if math.IsInf(e.Min, -1) {
		return fmt.Sprintf("(-inf, %g]", e.Max)
	}
	lo, hi := "[", fmt.Sprintf("%g)", e.Max)
	if e.Min == Threshold {
		lo = "("
	}
	if math.IsInf(e.Max, 1) {
		hi = "+inf)"
	}
	return fmt.Sprintf("%s%g, %s", lo, e.Min, hi)
}

// PaletteEntries lists the decisions of mode m in ascending luminance order.
func (m Mode) PaletteEntries() []PaletteEntry {
	entries := []PaletteEntry{{Name: "black", Hex: hexOf(Black), Min: math.Inf(-1), Max: Threshold}}
	if m == Monochrome {
		return append(entries, PaletteEntry{Name: "white", Hex: hexOf(White), Min: Threshold, Max: math.Inf(1)})
	}
	names := [...]string{"red", "green", "blue"}
	for i, c := range bandColors {
		entries = append(entries, PaletteEntry{
			Name: names[i],
			Hex:  hexOf(c),
			Min:  Threshold + BandWidth*float64(i),
			Max:  Threshold + BandWidth*float64(i+1),
		})
	}
	return append(entries, PaletteEntry{
		Name: "white",
		Hex:  hexOf(White),
		Min:  Threshold + BandWidth*float64(len(bandColors)),
		Max:  math.Inf(1),
	})
}

// PaletteHex returns the hex codes of mode m's palette, darkest decision first.
func (m Mode) PaletteHex() []string {
	var out []string
	for _, e := range m.PaletteEntries() {
		out = append(out, e.Hex)
	}
	return out
}

func hexOf(c color.Color) string {
	col, _ := colorful.MakeColor(c)
	return col.Hex()
}
