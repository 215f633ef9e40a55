package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Maidang1/pixel-picture/internal/hasher"
	"github.com/Maidang1/pixel-picture/internal/imageio"
	"github.com/Maidang1/pixel-picture/internal/manifest"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// processImage handles a single source image: decode, render, hash, write.
func (p *Pipeline) processImage(src Source) processResult {
	result := processResult{key: src.Key}

	img, err := imageio.Open(src.AbsPath)
	if err != nil {
		result.err = err
		return result
	}
	b := img.Bounds()

	r, err := RenderImage(img, p.cfg.Options, p.registry, p.cache)
	if err != nil {
		result.err = fmt.Errorf("render %s: %w", src.RelPath, err)
		return result
	}

	// Ensure output subdirectory exists.
	keyDir := filepath.Dir(src.Key)
	if keyDir != "." {
		if err := os.MkdirAll(filepath.Join(p.cfg.OutputDir, keyDir), 0o755); err != nil {
			result.err = fmt.Errorf("create dir %s: %w", keyDir, err)
			return result
		}
	}

	ob := r.Image.Bounds()
	contentHash := hasher.ContentHash(r.Data, 16)
	fileName := hasher.OutputName(src.Key, ob.Dx(), ob.Dy(), contentHash, r.Encoder.Extension())
	relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

	if err := os.WriteFile(filepath.Join(p.cfg.OutputDir, relPath), r.Data, 0o644); err != nil {
		result.err = fmt.Errorf("write %s: %w", relPath, err)
		return result
	}

	result.asset = manifest.Asset{
		Original: manifest.OriginalInfo{
			Width:  b.Dx(),
			Height: b.Dy(),
			Format: src.Format,
			Size:   src.Size,
		},
		Render: manifest.RenderInfo{
			Width:   r.Raster.Width,
			Height:  r.Raster.Height,
			Samples: r.Samples,
		},
		Variants: []manifest.Variant{{
			Format: r.Encoder.Format(),
			Width:  ob.Dx(),
			Height: ob.Dy(),
			Size:   int64(len(r.Data)),
			Hash:   contentHash,
			Path:   relPath,
		}},
	}
	return result
}
