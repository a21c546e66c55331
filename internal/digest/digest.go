// Package digest computes content digests over ordered sets of files.
//
// A digest is a single SHA-256 hash fed with the raw bytes of every file in
// the order the caller supplies them. Determinism is therefore the caller's
// responsibility: sort the paths before calling Files.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
)

// readBufferSize is the fixed chunk size used when streaming file contents
// into the hash. Files are never loaded into memory whole.
const readBufferSize = 1024

// Files streams each file in paths, in the given order, through a single
// SHA-256 hash and returns the still-open hash so callers can mix in
// additional bytes before encoding.
func Files(paths []string) (hash.Hash, error) {
	h := sha256.New()
	for _, path := range paths {
		if err := file(path, h); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Encode finalizes the hash and returns its lowercase hex form.
func Encode(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}

func file(path string, h hash.Hash) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("digest %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, readBufferSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("digest %s: %w", path, err)
		}
	}
}
