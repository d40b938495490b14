// Package hasher computes xxHash64 content digests used to detect
// re-encodes that would not change a file.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Digest is an xxHash64 value.
type Digest uint64

// Sum returns the digest of data.
func Sum(data []byte) Digest {
	return Digest(xxhash.Sum64(data))
}

// File streams the file at path through the hasher.
func File(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, fmt.Errorf("hash %s: %w", path, err)
	}
	return Digest(h.Sum64()), nil
}

// Hex returns the big-endian hex form of d, truncated to n characters
// when 0 < n < 16.
func (d Digest) Hex(n int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(d))
	full := hex.EncodeToString(b[:])
	if n > 0 && n < len(full) {
		return full[:n]
	}
	return full
}

func (d Digest) String() string { return d.Hex(0) }
