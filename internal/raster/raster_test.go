package raster

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestNew_OpaqueBlack(t *testing.T) {
	r := New(3, 2)
	if len(r.Pix) != 3*2*4 {
		t.Fatalf("pix len: got %d, want %d", len(r.Pix), 24)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got := r.At(x, y); got != (color.NRGBA{0, 0, 0, 255}) {
				t.Errorf("(%d,%d): got %v, want opaque black", x, y, got)
			}
		}
	}
}

func TestNew_Empty(t *testing.T) {
	for _, d := range [][2]int{{0, 0}, {0, 5}, {5, 0}} {
		r := New(d[0], d[1])
		if len(r.Pix) != 0 {
			t.Errorf("%dx%d: got %d bytes, want 0", d[0], d[1], len(r.Pix))
		}
		if err := r.Validate(); err != nil {
			t.Errorf("%dx%d: validate: %v", d[0], d[1], err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		r    *Raster
		ok   bool
	}{
		{"exact", &Raster{Width: 2, Height: 2, Pix: make([]byte, 16)}, true},
		{"short", &Raster{Width: 2, Height: 2, Pix: make([]byte, 15)}, false},
		{"long", &Raster{Width: 2, Height: 2, Pix: make([]byte, 17)}, false},
		{"negative", &Raster{Width: -1, Height: 2}, false},
		{"nil", nil, false},
		{"overflow", &Raster{Width: math.MaxInt / 2, Height: 4}, false},
		{"zero width, huge height", &Raster{Width: 0, Height: math.MaxInt}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("got err=%v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestFromImage_NRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.SetNRGBA(1, 2, color.NRGBA{10, 20, 30, 40})

	r := FromImage(img)
	if r.Width != 4 || r.Height != 3 {
		t.Fatalf("dims: got %dx%d, want 4x3", r.Width, r.Height)
	}
	if got := r.At(1, 2); got != (color.NRGBA{10, 20, 30, 40}) {
		t.Errorf("pixel: got %v", got)
	}

	// Copy, not alias.
	r.Set(1, 2, color.NRGBA{})
	if img.NRGBAAt(1, 2).R != 10 {
		t.Error("FromImage aliased the source buffer")
	}
}

func TestFromImage_Converts(t *testing.T) {
	gray := image.NewGray(image.Rect(5, 5, 7, 6))
	gray.SetGray(6, 5, color.Gray{Y: 200})

	r := FromImage(gray)
	if r.Width != 2 || r.Height != 1 {
		t.Fatalf("dims: got %dx%d, want 2x1", r.Width, r.Height)
	}
	if got := r.At(1, 0); got != (color.NRGBA{200, 200, 200, 255}) {
		t.Errorf("pixel: got %v", got)
	}
}

func TestFromImage_SubImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	img.SetNRGBA(3, 4, color.NRGBA{1, 2, 3, 255})
	sub := img.SubImage(image.Rect(2, 3, 6, 7))

	r := FromImage(sub)
	if r.Width != 4 || r.Height != 4 {
		t.Fatalf("dims: got %dx%d, want 4x4", r.Width, r.Height)
	}
	if got := r.At(1, 1); got != (color.NRGBA{1, 2, 3, 255}) {
		t.Errorf("pixel: got %v", got)
	}
}

func TestImage_SharesBuffer(t *testing.T) {
	r := New(2, 2)
	img := r.Image()
	img.SetNRGBA(1, 1, color.NRGBA{255, 0, 0, 255})
	if got := r.At(1, 1); got.R != 255 {
		t.Errorf("got %v, want red", got)
	}
}
