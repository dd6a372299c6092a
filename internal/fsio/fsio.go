package fsio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type Reader interface {
	ReadFile(name string) ([]byte, error)
}

type Writer interface {
	WriteFile(name string, data []byte) error
}

// Ensure the real implementations satisfy their interfaces
var (
	_ Reader = &RealReader{}
	_ Writer = &RealWriter{}
)

type RealReader struct{}

func (r *RealReader) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

// RealWriter replaces files atomically under an advisory lock, keeping the mode
// of the file being replaced.
type RealWriter struct{}

func (w *RealWriter) WriteFile(name string, data []byte) error {
	lock := NewFileLock(name)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	return writeAtomic(name, data)
}

func writeAtomic(name string, data []byte) error {
	perm := os.FileMode(0o644)
	if st, err := os.Stat(name); err == nil {
		perm = st.Mode().Perm()
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	dir := filepath.Dir(name)

	// Write to a temp file in the same directory so rename is atomic.
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up temp file on failure.
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// On Windows, Rename may fail if dst exists.
	if err := os.Rename(tmpName, name); err != nil {
		if errors.Is(err, os.ErrExist) || errors.Is(err, os.ErrPermission) {
			_ = os.Remove(name)
			return os.Rename(tmpName, name)
		}
		return err
	}

	return nil
}
