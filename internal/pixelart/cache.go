package pixelart

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/Maidang1/pixel-picture/internal/raster"
	"github.com/cespare/xxhash/v2"
)

// DefaultCacheEntries bounds a Cache created with a non-positive size.
const DefaultCacheEntries = 16

// Cache memoises Transform results keyed on the source content and config.
// Entries are matched on the 64-bit Key alone; the source pixels are not
// compared again on a hit. Hits return a copy, so callers may modify what
// they get back. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	max     int
	entries map[uint64]*raster.Raster
	order   []uint64 // insertion order, oldest first

	hits, misses int
}

// NewCache creates a cache holding at most maxEntries rendered rasters.
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultCacheEntries
	}
	return &Cache{
		max:     maxEntries,
		entries: make(map[uint64]*raster.Raster, maxEntries),
	}
}

// Transform returns the cached rendering of (src, cfg) or computes it with
// TransformParallel using workers goroutines.
func (c *Cache) Transform(src *raster.Raster, cfg Config, workers int) (*raster.Raster, error) {
	if err := check(src, cfg); err != nil {
		return nil, err
	}
	key := Key(src, cfg)

	c.mu.Lock()
	if out, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		return out.Clone(), nil
	}
	c.misses++
	c.mu.Unlock()

	out, err := TransformParallel(src, cfg, workers)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if _, ok := c.entries[key]; !ok {
		if len(c.order) >= c.max {
			delete(c.entries, c.order[0])
			c.order = c.order[1:]
		}
		c.entries[key] = out.Clone()
		c.order = append(c.order, key)
	}
	c.mu.Unlock()
	return out, nil
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of cached renderings.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Key is the xxHash64 of the raster dimensions, pixels and config.
func Key(src *raster.Raster, cfg Config) uint64 {
	fields := [...]uint64{
		uint64(src.Width),
		uint64(src.Height),
		math.Float64bits(cfg.Weights.R),
		math.Float64bits(cfg.Weights.G),
		math.Float64bits(cfg.Weights.B),
		uint64(cfg.SampleStride),
		uint64(cfg.BlockSize),
		uint64(cfg.Mode),
	}
	var hdr [8 * len(fields)]byte
	for i, f := range fields {
		binary.LittleEndian.PutUint64(hdr[8*i:], f)
	}

	h := xxhash.New()
	h.Write(hdr[:])
	h.Write(src.Pix)
	return h.Sum64()
}
