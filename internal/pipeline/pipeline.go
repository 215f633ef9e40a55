// Package pipeline renders directories of images into pixel art and records
// the results in a manifest.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/Maidang1/pixel-picture/internal/encoder"
	"github.com/Maidang1/pixel-picture/internal/manifest"
	"github.com/Maidang1/pixel-picture/internal/pixelart"
)

// Config holds all parameters for a build pipeline run.
type Config struct {
	InputDir  string
	OutputDir string
	Preset    string // preset name, recorded in the manifest
	Options   Options
	Workers   int // images processed in parallel (0 = NumCPU)
	Verbose   bool
	Log       io.Writer // defaults to os.Stderr
}

// Pipeline orchestrates image processing.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
	cache    *pixelart.Cache
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	// Images already run in parallel; one goroutine per transform.
	if cfg.Options.Workers <= 0 {
		cfg.Options.Workers = 1
	}
	if cfg.Log == nil {
		cfg.Log = os.Stderr
	}
	return &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
		cache:    pixelart.NewCache(cfg.Workers * 2),
	}
}

func (p *Pipeline) logf(format string, args ...any) {
	fmt.Fprintf(p.cfg.Log, "[pixelpic] "+format+"\n", args...)
}

func (p *Pipeline) debugf(format string, args ...any) {
	if p.cfg.Verbose {
		p.logf(format, args...)
	}
}

// Settings describes the pipeline's render parameters for the manifest.
func (p *Pipeline) Settings() manifest.Settings {
	o := p.cfg.Options
	format := encoder.NormalizeFormat(o.Format)
	if format == "" {
		format = encoder.DefaultFormat
	}
	return manifest.Settings{
		Weights:   [3]float64{o.Config.Weights.R, o.Config.Weights.G, o.Config.Weights.B},
		Stride:    o.Config.SampleStride,
		BlockSize: o.Config.BlockSize,
		Mode:      o.Config.Mode,
		Palette:   o.Config.Mode.PaletteHex(),
		Format:    format,
		Quality:   o.Quality,
		MaxWidth:  o.MaxWidth,
		Blur:      o.Blur,
		Scale:     o.Scale,
	}
}

// Run executes the full build pipeline and returns the manifest.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	// Fail fast on settings that would fail every image.
	if err := p.cfg.Options.Config.Validate(); err != nil {
		return nil, err
	}
	if _, err := p.registry.Resolve(p.cfg.Options.Format); err != nil {
		return nil, err
	}
	p.debugf("%s", p.registry.String())

	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.InputDir, p.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	p.debugf("found %d images", len(sources))

	// Step 2: Process images in parallel.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			p.debugf("processing: %s", s.Key)
			results[idx] = p.processImage(s)
			if results[idx].err == nil {
				p.debugf("done: %s (%d samples)", s.Key, results[idx].asset.Render.Samples)
			}
		}(i, src)
	}
	wg.Wait()

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Preset, p.Settings())

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		if _, dup := m.Assets[r.key]; dup {
			p.logf("warning: duplicate asset key %q, keeping the first", r.key)
			continue
		}
		m.Assets[r.key] = r.asset
	}

	// Report errors but don't fail the entire build for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			p.logf("error: %v", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process", len(errs))
		}
		p.logf("warning: %d of %d images had errors", len(errs), len(sources))
	}

	hits, _ := p.cache.Stats()
	m.BuildInfo = &manifest.BuildInfo{
		Workers:   p.cfg.Workers,
		CacheHits: hits,
	}
	m.ComputeStats()
	return m, nil
}
