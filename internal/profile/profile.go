// Package profile holds the built-in render presets.
package profile

import (
	"sort"

	"github.com/Maidang1/pixel-picture/internal/pixelart"
)

// DefaultName is used when no preset is requested or the name is unknown.
const DefaultName = "classic"

// Preset is a named set of render parameters.
type Preset struct {
	Name        string
	Description string
	Weights     pixelart.Weights
	BlockSize   int // painted square edge, px
	Stride      int // sample spacing, px
	Mode        pixelart.Mode
	Format      string // output format
	Quality     int    // 1-100, lossy formats only
}

// Built-in presets.
var presets = map[string]Preset{
	"classic": {
		Name:        "classic",
		Description: "3px black/white dots every 5px",
		Weights:     pixelart.DefaultWeights,
		BlockSize:   3,
		Stride:      5,
		Mode:        pixelart.Monochrome,
		Format:      "png",
		Quality:     90,
	},
	"color": {
		Name:        "color",
		Description: "classic grid with red/green/blue luminance bands",
		Weights:     pixelart.DefaultWeights,
		BlockSize:   3,
		Stride:      5,
		Mode:        pixelart.Banded,
		Format:      "png",
		Quality:     90,
	},
	"fine": {
		Name:        "fine",
		Description: "every pixel sampled, banded",
		Weights:     pixelart.DefaultWeights,
		BlockSize:   1,
		Stride:      1,
		Mode:        pixelart.Banded,
		Format:      "png",
		Quality:     90,
	},
	"mosaic": {
		Name:        "mosaic",
		Description: "solid 10px tiles, banded",
		Weights:     pixelart.DefaultWeights,
		BlockSize:   10,
		Stride:      10,
		Mode:        pixelart.Banded,
		Format:      "png",
		Quality:     90,
	},
	"dots": {
		Name:        "dots",
		Description: "sparse 2px dots every 6px",
		Weights:     pixelart.DefaultWeights,
		BlockSize:   2,
		Stride:      6,
		Mode:        pixelart.Monochrome,
		Format:      "png",
		Quality:     90,
	},
}

// Get returns a preset by name. Falls back to classic if unknown.
func Get(name string) Preset {
	if p, ok := presets[name]; ok {
		return p
	}
	p := presets[DefaultName]
	if name != "" {
		p.Name = name // preserve requested name
	}
	return p
}

// Known reports whether name is a built-in preset.
func Known(name string) bool {
	_, ok := presets[name]
	return ok
}

// Names returns all preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Config converts the preset into transform parameters.
func (p Preset) Config() pixelart.Config {
	return pixelart.Config{
		Weights:      p.Weights,
		SampleStride: p.Stride,
		BlockSize:    p.BlockSize,
		Mode:         p.Mode,
	}
}
