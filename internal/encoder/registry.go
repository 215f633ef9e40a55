package encoder

import (
	"fmt"
	"strings"
)

// DefaultFormat is written when no format is requested.
const DefaultFormat = "png"

// priority is the display order of formats.
var priority = []string{"png", "webp", "jpeg", "avif", "rgba.zst"}

// Registry holds all available encoders keyed by format name.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}

	// Register all encoders. Only available ones will be used.
	all := []Encoder{
		&PNGEncoder{},
		NewWebPEncoder(),
		&JPEGEncoder{},
		NewAVIFEncoder(),
		&RawZstdEncoder{},
	}

	for _, enc := range all {
		if enc.Available() {
			r.encoders[enc.Format()] = enc
		}
	}

	return r
}

// NormalizeFormat lower-cases a format name and folds aliases.
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	switch f {
	case "jpg":
		return "jpeg"
	case "raw", "rgba", "zst":
		return "rgba.zst"
	}
	return f
}

// Get returns an encoder for the given format, or nil if unavailable.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[NormalizeFormat(format)]
}

// Resolve returns the encoder for format, or the default PNG encoder when
// format is empty. Unknown or unavailable formats are an error.
func (r *Registry) Resolve(format string) (Encoder, error) {
	if strings.TrimSpace(format) == "" {
		format = DefaultFormat
	}
	if enc := r.Get(format); enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("format %q unavailable (%s)", format, r.String())
}

// Formats returns every format name the registry knows, available or not.
func Formats() []string {
	return append([]string(nil), priority...)
}

// Available returns all available format names.
func (r *Registry) Available() []string {
	var result []string
	// Maintain priority order.
	for _, f := range priority {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
