package cache

import (
	"errors"
	"github.com/kardolus/quickpatch/internal/fsio"
	"os"
	"path/filepath"
)

//go:generate mockgen -destination=storemocks_test.go -package=cache_test github.com/kardolus/quickpatch/cache Store
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

func NewFileStore(baseDir string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		writer:  &fsio.RealWriter{},
	}
}

// Ensure FileStore implements the Store interface
var _ Store = &FileStore{}

// FileStore keeps one file per key under baseDir.
type FileStore struct {
	baseDir string
	writer  fsio.Writer
}

func (f *FileStore) Get(key string) ([]byte, error) {
	return os.ReadFile(f.pathForKey(key))
}

func (f *FileStore) Set(key string, value []byte) error {
	// Backups hold document content, keep them private.
	if err := os.MkdirAll(f.baseDir, 0o700); err != nil {
		return err
	}

	return f.writer.WriteFile(f.pathForKey(key), value)
}

func (f *FileStore) Delete(key string) error {
	err := os.Remove(f.pathForKey(key))
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (f *FileStore) pathForKey(key string) string {
	// Keys are sha256 hex digests.
	return filepath.Join(f.baseDir, key+".json")
}
