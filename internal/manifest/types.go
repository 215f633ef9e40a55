package manifest

import "github.com/Maidang1/pixel-picture/internal/pixelart"

// Manifest is the top-level output of a pixelpic build.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Preset      string           `json:"preset"`
	BasePath    string           `json:"base_path"`
	Settings    Settings         `json:"settings"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// Settings records the render parameters every asset was built with.
type Settings struct {
	Weights   [3]float64    `json:"weights"` // r, g, b
	Stride    int           `json:"stride"`
	BlockSize int           `json:"block_size"`
	Mode      pixelart.Mode `json:"mode"`
	Palette   []string      `json:"palette"` // hex, darkest decision first
	Format    string        `json:"format"`
	Quality   int           `json:"quality,omitempty"`
	MaxWidth  int           `json:"max_width,omitempty"`
	Blur      float64       `json:"blur,omitempty"`
	Scale     int           `json:"scale,omitempty"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers   int `json:"workers"`
	CacheHits int `json:"cache_hits"` // renders reused from identical sources
}

// Asset describes a single source image and its rendered outputs.
type Asset struct {
	Original OriginalInfo `json:"original"`
	Render   RenderInfo   `json:"render"`
	Variants []Variant    `json:"variants"`
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

// RenderInfo describes the raster the transform ran on, after --max-width
// fitting. Samples counts the grid points painted.
type RenderInfo struct {
	Width   int `json:"width"`
	Height  int `json:"height"`
	Samples int `json:"samples"`
}

// Variant is one encoded output of an asset.
type Variant struct {
	Format string `json:"format"` // "png", "jpeg", "webp", "avif", "rgba.zst"
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"` // bytes on disk
	Hash   string `json:"hash"` // first 16 hex chars of xxhash64
	Path   string `json:"path"` // relative to base_path
}

// Stats aggregates build metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalAssets      int   `json:"total_assets"`
	TotalVariants    int   `json:"total_variants"`
	TotalSamples     int   `json:"total_samples"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the manifest's name inside an output directory.
const FileName = "pixelpic.manifest.json"
