package digester

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// DigestBytes returns the SHA256 hex digest of content.
func DigestBytes(content []byte) string {
	sum := sha256.Sum256(content)

	return hex.EncodeToString(sum[:])
}

// Matches reports whether the file at path holds exactly
// content. A missing file never matches. Files whose size
// differs are rejected without being read.
func Matches(path string, content []byte) (same bool, retErr error) {
	const errCtx = "matching digest"

	fi, err := os.Open(path) //nolint:gosec // path is caller-provided by design
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	st, err := fi.Stat()
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	if st.IsDir() {
		return false, fmt.Errorf("%s: %s is a directory", errCtx, path)
	}

	if st.Size() != int64(len(content)) {
		return false, nil
	}

	ha := sha256.New()

	if _, err := io.Copy(ha, fi); err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	return hex.EncodeToString(ha.Sum(nil)) == DigestBytes(content), nil
}
