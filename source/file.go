package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyDiff = errors.New("diff is empty")
	ErrNoDiff    = errors.New("no diff given: use --diff, --diff-file, --history or --interactive")
)

// ReadDiffFile reads a diff from a regular file of at most maxBytes bytes.
func ReadDiffFile(path string, maxBytes int64) (string, error) {
	clean := filepath.Clean(path)

	f, err := os.Open(clean)
	if err != nil {
		return "", fmt.Errorf("failed to open diff file: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat diff file: %w", err)
	}

	if !st.Mode().IsRegular() {
		return "", errors.New("diff file must be a regular file")
	}

	if st.Size() > maxBytes {
		return "", fmt.Errorf("diff file too large (max %d bytes)", maxBytes)
	}

	return ReadDiff(f, maxBytes)
}

// ReadDiff reads a diff from r, failing once more than maxBytes are available.
func ReadDiff(r io.Reader, maxBytes int64) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read diff: %w", err)
	}
	if int64(len(b)) > maxBytes {
		return "", fmt.Errorf("diff too large (max %d bytes)", maxBytes)
	}

	diff := string(b)
	if strings.TrimSpace(diff) == "" {
		return "", ErrEmptyDiff
	}

	return diff, nil
}
