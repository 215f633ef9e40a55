package encoder

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"sync"

	"github.com/Maidang1/pixel-picture/internal/raster"
	"github.com/klauspost/compress/zstd"
)

// rawMagic opens every decompressed rgba.zst payload.
var rawMagic = [8]byte{'P', 'X', 'R', 'G', 'B', 'A', '0', '1'}

const rawHeaderLen = 16 // magic + uint32 width + uint32 height

// RawZstdEncoder writes the dense RGBA raster behind a 16-byte header,
// compressed with zstd. It is meant for consumers that want the raw raster
// back rather than an image file.
type RawZstdEncoder struct{}

func (e *RawZstdEncoder) Format() string    { return "rgba.zst" }
func (e *RawZstdEncoder) Extension() string { return "rgba.zst" }
func (e *RawZstdEncoder) Available() bool   { return true }

func (e *RawZstdEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	r := raster.FromImage(img)

	payload := make([]byte, rawHeaderLen+len(r.Pix))
	copy(payload, rawMagic[:])
	binary.LittleEndian.PutUint32(payload[8:], uint32(r.Width))
	binary.LittleEndian.PutUint32(payload[12:], uint32(r.Height))
	copy(payload[rawHeaderLen:], r.Pix)

	enc, err := zstdEncoder()
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	return enc.EncodeAll(payload, make([]byte, 0, len(payload)/8)), nil
}

// DecodeRawZstd reverses RawZstdEncoder.Encode.
func DecodeRawZstd(data []byte) (*raster.Raster, error) {
	dec, err := zstdDecoder()
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	payload, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	if len(payload) < rawHeaderLen || !bytes.Equal(payload[:8], rawMagic[:]) {
		return nil, fmt.Errorf("not an rgba.zst payload")
	}
	r := &raster.Raster{
		Width:  int(binary.LittleEndian.Uint32(payload[8:])),
		Height: int(binary.LittleEndian.Uint32(payload[12:])),
		Pix:    payload[rawHeaderLen:],
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("rgba.zst: %w", err)
	}
	return r, nil
}

// EncodeAll/DecodeAll are safe for concurrent use, so one instance of each
// is shared.
var (
	zencOnce sync.Once
	zenc     *zstd.Encoder
	zencErr  error

	zdecOnce sync.Once
	zdec     *zstd.Decoder
	zdecErr  error
)

func zstdEncoder() (*zstd.Encoder, error) {
	zencOnce.Do(func() {
		zenc, zencErr = zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
			zstd.WithLowerEncoderMem(true),
		)
	})
	return zenc, zencErr
}

func zstdDecoder() (*zstd.Decoder, error) {
	zdecOnce.Do(func() {
		zdec, zdecErr = zstd.NewReader(nil, zstd.WithDecoderLowmem(true))
	})
	return zdec, zdecErr
}
