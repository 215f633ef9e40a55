package hasher

import "testing"

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("pixel"), 16)
	if len(a) != 16 {
		t.Fatalf("len: got %d, want 16", len(a))
	}
	if b := ContentHash([]byte("pixel"), 16); a != b {
		t.Errorf("not deterministic: %s vs %s", a, b)
	}
	if c := ContentHash([]byte("pixels"), 16); a == c {
		t.Error("different input, same hash")
	}
	if full := ContentHash([]byte("pixel"), 0); len(full) != 16 || full != a {
		t.Errorf("full: got %q", full)
	}
	if short := ContentHash([]byte("pixel"), 8); short != a[:8] {
		t.Errorf("prefix: got %q, want %q", short, a[:8])
	}
}

func TestContentHash_Empty(t *testing.T) {
	// xxHash64 of the empty input with seed 0.
	if got := ContentHash(nil, 0); got != "ef46db3751d8e999" {
		t.Errorf("got %s", got)
	}
}

func TestOutputName(t *testing.T) {
	got := OutputName("cards/card-1", 200, 150, "0123456789abcdef", "png")
	if want := "card-1.200.150.01234567.png"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := OutputName("logo", 1, 1, "abc", "rgba.zst"); got != "logo.1.1.abc.rgba.zst" {
		t.Errorf("got %q", got)
	}
}
