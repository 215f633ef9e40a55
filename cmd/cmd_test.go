package cmd

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Maidang1/pixel-picture/internal/manifest"
	"github.com/Maidang1/pixel-picture/internal/pipeline"
	"github.com/Maidang1/pixel-picture/internal/pixelart"
	"github.com/spf13/pflag"
)

func parseRenderFlags(t *testing.T, args ...string) (pipeline.Options, error) {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var f renderFlags
	f.bind(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return f.options(fs)
}

func writeSolidPNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// ─── renderFlags ─────────────────────────────────────────────

func TestRenderFlags_PresetDefaults(t *testing.T) {
	opts, err := parseRenderFlags(t)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Config != pixelart.DefaultConfig() {
		t.Errorf("config: got %+v, want %+v", opts.Config, pixelart.DefaultConfig())
	}
	if opts.Format != "png" || opts.Scale != 1 {
		t.Errorf("got format=%q scale=%d", opts.Format, opts.Scale)
	}
}

func TestRenderFlags_Overrides(t *testing.T) {
	opts, err := parseRenderFlags(t,
		"--preset", "mosaic", "--stride", "4", "--weights", "1, 0, 0", "--mode", "mono", "-f", "jpg", "-q", "70")
	if err != nil {
		t.Fatal(err)
	}
	c := opts.Config
	if c.SampleStride != 4 || c.BlockSize != 10 {
		t.Errorf("stride/block: got %d/%d, want 4/10", c.SampleStride, c.BlockSize)
	}
	if c.Mode != pixelart.Monochrome {
		t.Errorf("mode: got %v", c.Mode)
	}
	if c.Weights != (pixelart.Weights{R: 1}) {
		t.Errorf("weights: got %v", c.Weights)
	}
	if opts.Format != "jpeg" || opts.Quality != 70 {
		t.Errorf("format/quality: got %q/%d", opts.Format, opts.Quality)
	}
}

func TestRenderFlags_Color(t *testing.T) {
	opts, err := parseRenderFlags(t, "--color")
	if err != nil {
		t.Fatal(err)
	}
	if opts.Config.Mode != pixelart.Banded {
		t.Errorf("mode: got %v, want banded", opts.Config.Mode)
	}
}

func TestRenderFlags_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		config bool // error wraps ErrInvalidConfig
	}{
		{"zero block", []string{"--block", "0"}, true},
		{"negative stride", []string{"--stride", "-2"}, true},
		{"bad weights", []string{"--weights", "1,2"}, false},
		{"bad mode", []string{"--mode", "sepia"}, false},
		{"mode and color", []string{"--mode", "banded", "--color"}, false},
		{"negative blur", []string{"--blur", "-1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRenderFlags(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, pixelart.ErrInvalidConfig); got != tt.config {
				t.Errorf("errors.Is(ErrInvalidConfig): got %v, want %v (%v)", got, tt.config, err)
			}
		})
	}
}

// ─── render ──────────────────────────────────────────────────

func TestDefaultOutputPath(t *testing.T) {
	got := defaultOutputPath(filepath.Join("photos", "cat.jpeg"), "png")
	if want := filepath.Join("photos", "pixel-cat.png"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "white.png")
	writeSolidPNG(t, input, 10, 10, color.NRGBA{255, 255, 255, 255})

	opts, err := parseRenderFlags(t, "--color", "--scale", "2")
	if err != nil {
		t.Fatal(err)
	}
	r, err := renderFile(input, opts)
	if err != nil {
		t.Fatalf("renderFile: %v", err)
	}
	if r.Samples != 4 {
		t.Errorf("samples: got %d, want 4", r.Samples)
	}
	if b := r.Image.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Errorf("bounds: got %v, want 20x20", b)
	}

	var out bytes.Buffer
	printRenderReport(&out, input, "x.png", r, 0)
	if !strings.Contains(out.String(), "20x20 (png)") {
		t.Errorf("report: %q", out.String())
	}
}

func TestRenderFile_Missing(t *testing.T) {
	opts, _ := parseRenderFlags(t)
	if _, err := renderFile(filepath.Join(t.TempDir(), "nope.png"), opts); err == nil {
		t.Error("expected error for missing input")
	}
}

func TestWriteSidecar(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "g.png")
	writeSolidPNG(t, input, 6, 4, color.NRGBA{90, 90, 90, 255})

	opts, _ := parseRenderFlags(t, "--format", "raw")
	r, err := renderFile(input, opts)
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "g.rgba.zst")
	if err := writeSidecar(out, input, r, opts); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out + ".json")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"width": 6`, `"height": 4`, `"format": "RGBA8"`, `"mode": "monochrome"`} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("sidecar missing %s: %s", want, data)
		}
	}
}

// ─── build / validate / stats ────────────────────────────────

func buildFixture(t *testing.T) (string, *manifest.Manifest) {
	t.Helper()
	in := t.TempDir()
	out := t.TempDir()
	writeSolidPNG(t, filepath.Join(in, "a.png"), 10, 10, color.NRGBA{255, 255, 255, 255})
	writeSolidPNG(t, filepath.Join(in, "nested", "b.png"), 8, 12, color.NRGBA{150, 150, 150, 255})

	opts, err := parseRenderFlags(t, "--preset", "color")
	if err != nil {
		t.Fatal(err)
	}
	p := pipeline.New(pipeline.Config{InputDir: in, OutputDir: out, Preset: "color", Options: opts, Workers: 2, Log: io.Discard})
	m, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := manifest.WriteJSON(m, filepath.Join(out, manifest.FileName)); err != nil {
		t.Fatal(err)
	}
	return out, m
}

func TestValidateManifest_Valid(t *testing.T) {
	out, m := buildFixture(t)
	if errs := validateManifest(m, out, true); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}

	path, err := manifestPath(out)
	if err != nil {
		t.Fatal(err)
	}
	back, err := manifest.ReadJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if errs := validateManifest(back, out, true); len(errs) != 0 {
		t.Errorf("round-tripped manifest: %v", errs)
	}
}

func TestValidateManifest_Detects(t *testing.T) {
	out, m := buildFixture(t)

	a := m.Assets["nested/b"]
	v := a.Variants[0]
	if err := os.WriteFile(filepath.Join(out, v.Path), []byte("tampered"), 0o644); err != nil {
		t.Fatal(err)
	}
	m.Settings.Palette = m.Settings.Palette[:2]
	m.Settings.Stride = 0
	m.Stats.TotalSamples++

	errs := validateManifest(m, out, true)
	joined := strings.Join(errs, "\n")
	for _, want := range []string{"invalid stride 0", "palette has 2 colours", "size mismatch", "hash mismatch", "total_samples mismatch"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in:\n%s", want, joined)
		}
	}

	os.Remove(filepath.Join(out, v.Path))
	if errs := validateManifest(m, out, false); !strings.Contains(strings.Join(errs, "\n"), "file not found") {
		t.Errorf("missing file not reported: %v", errs)
	}
}

func TestPrintStats(t *testing.T) {
	_, m := buildFixture(t)
	var buf bytes.Buffer
	printStats(&buf, m)
	s := buf.String()
	for _, want := range []string{"Preset:           color", "Total assets:     2", "png", "10x10", "#ff0000"} {
		if !strings.Contains(s, want) {
			t.Errorf("stats output missing %q:\n%s", want, s)
		}
	}
}

func TestPrintBuildReport(t *testing.T) {
	_, m := buildFixture(t)
	var buf bytes.Buffer
	printBuildReport(&buf, m, 0)
	if !strings.Contains(buf.String(), "Top 2 largest outputs") {
		t.Errorf("report: %s", buf.String())
	}
}

// ─── presets / palette ───────────────────────────────────────

func TestPrintPresets(t *testing.T) {
	var buf bytes.Buffer
	if err := printPresets(&buf); err != nil {
		t.Fatal(err)
	}
	s := buf.String()
	for _, want := range []string{"classic (default)", "mosaic", "banded"} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q:\n%s", want, s)
		}
	}
}

func TestPrintPalette(t *testing.T) {
	var buf bytes.Buffer
	if err := printPalette(&buf, pixelart.Banded); err != nil {
		t.Fatal(err)
	}
	s := buf.String()
	for _, want := range []string{"band width 50", "(-inf, 128]", "(128, 178)", "[278, +inf)", "#0000ff"} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %q:\n%s", want, s)
		}
	}

	buf.Reset()
	if err := printPalette(&buf, pixelart.Monochrome); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "red") || !strings.Contains(buf.String(), "(128, +inf)") {
		t.Errorf("monochrome palette:\n%s", buf.String())
	}
}

func TestTruncKey(t *testing.T) {
	if got := truncKey("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncKey("a/very/long/asset/key", 10); got != "...set/key" || len(got) != 10 {
		t.Errorf("got %q", got)
	}
}
