package contentid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Fingerprint is the lowercase hex SHA-256 digest of a file's content.
type Fingerprint string

// hashBlockSize is the read granularity while streaming a file. Files on
// network storage dominate runtime, so reads stay large but bounded.
const hashBlockSize = 1 << 20 // 1 MiB

// HashFile streams the file at path and returns its fingerprint. The file
// is never loaded wholesale; any I/O error (missing file, permission,
// unreadable device) is returned to the caller and is expected to be
// non-fatal to a batch run.
func HashFile(path string) (Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for hashing: %w", err)
	}
	defer f.Close()

	digest := sha256.New()
	buf := make([]byte, hashBlockSize)
	if _, err := io.CopyBuffer(digest, f, buf); err != nil {
		return "", fmt.Errorf("read for hashing: %w", err)
	}

	return Fingerprint(hex.EncodeToString(digest.Sum(nil))), nil
}
