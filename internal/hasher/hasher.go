// Package hasher names rendered outputs by their content.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"path"

	"github.com/cespare/xxhash/v2"
)

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to the given length. Manifests store 16 hex chars (64 bits);
// filenames use the first 8.
func ContentHash(data []byte, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64(data))
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}

// OutputName builds the content-addressed file name for an encoded variant:
// <base>.<w>.<h>.<hash8>.<ext>
func OutputName(key string, w, h int, hash, ext string) string {
	if len(hash) > 8 {
		hash = hash[:8]
	}
	return fmt.Sprintf("%s.%d.%d.%s.%s", path.Base(key), w, h, hash, ext)
}
