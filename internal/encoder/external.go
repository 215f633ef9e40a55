package encoder

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
)

// Atomic counter for unique temp file names across goroutines.
var tempCounter atomic.Int64

// ExternalEncoder encodes by writing a temporary PNG and shelling out to a
// command-line encoder. This avoids CGO for formats the standard library
// cannot write.
type ExternalEncoder struct {
	format string
	ext    string
	tool   string
	hint   string
	// args builds the tool arguments for a source and destination path.
	args func(quality int, src, dst string) []string

	once      sync.Once
	available bool
	toolPath  string
}

// NewWebPEncoder shells out to cwebp (brew install webp / apt install webp).
// Lossless mode keeps the flat block colours exact.
func NewWebPEncoder() *ExternalEncoder {
	return &ExternalEncoder{
		format: "webp",
		ext:    "webp",
		tool:   "cwebp",
		hint:   "brew install webp",
		args: func(_ int, src, dst string) []string {
			return []string{"-lossless", "-z", "9", "-quiet", src, "-o", dst}
		},
	}
}

// NewAVIFEncoder shells out to avifenc (brew install libavif).
func NewAVIFEncoder() *ExternalEncoder {
	return &ExternalEncoder{
		format: "avif",
		ext:    "avif",
		tool:   "avifenc",
		hint:   "brew install libavif",
		args: func(quality int, src, dst string) []string {
			// avifenc: lower is better, 0-63.
			q := 63 - (clampQuality(quality) * 63 / 100)
			return []string{
				"--min", fmt.Sprint(q), "--max", fmt.Sprint(q),
				"--speed", "6", "-j", "all", src, dst,
			}
		},
	}
}

func (e *ExternalEncoder) Format() string    { return e.format }
func (e *ExternalEncoder) Extension() string { return e.ext }

func (e *ExternalEncoder) Available() bool {
	e.once.Do(func() {
		path, err := exec.LookPath(e.tool)
		if err == nil {
			e.available = true
			e.toolPath = path
		}
	})
	return e.available
}

func (e *ExternalEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	if !e.Available() {
		return nil, fmt.Errorf("%s not found in PATH; install with: %s", e.tool, e.hint)
	}

	id := tempCounter.Add(1)
	srcFile, err := os.CreateTemp("", fmt.Sprintf("pixelpic_src_%d_*.png", id))
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	srcPath := srcFile.Name()
	defer os.Remove(srcPath)

	dstFile, err := os.CreateTemp("", fmt.Sprintf("pixelpic_dst_%d_*.%s", id, e.ext))
	if err != nil {
		srcFile.Close()
		return nil, fmt.Errorf("create temp: %w", err)
	}
	dstPath := dstFile.Name()
	dstFile.Close()
	defer os.Remove(dstPath)

	if err := png.Encode(srcFile, img); err != nil {
		srcFile.Close()
		return nil, fmt.Errorf("encode temp png: %w", err)
	}
	if err := srcFile.Close(); err != nil {
		return nil, fmt.Errorf("close temp png: %w", err)
	}

	cmd := exec.Command(e.toolPath, e.args(quality, srcPath, dstPath)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", e.tool, err, string(out))
	}

	return os.ReadFile(dstPath)
}
