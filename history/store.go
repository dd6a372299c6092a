package history

import (
	"encoding/json"
	"errors"
	"github.com/kardolus/quickpatch/internal"
	"github.com/kardolus/quickpatch/internal/fsio"
	"os"
	"path/filepath"
)

const historyFileName = "diffs.json"

//go:generate mockgen -destination=historymocks_test.go -package=history_test github.com/kardolus/quickpatch/history Store
type Store interface {
	Read() ([]Entry, error)
	Write([]Entry) error
	Delete() error
	// Update runs fn on the stored entries and writes its result back while
	// holding the store's lock.
	Update(fn func([]Entry) []Entry) error
}

// Ensure FileIO implements the Store interface
var _ Store = &FileIO{}

type FileIO struct {
	historyFilePath string
	writer          fsio.Writer
}

func New() (*FileIO, error) {
	dataHome, err := internal.GetDataHome()
	if err != nil {
		return nil, err
	}

	return &FileIO{
		historyFilePath: filepath.Join(dataHome, historyFileName),
		writer:          &fsio.RealWriter{},
	}, nil
}

func (f *FileIO) WithFilePath(historyFilePath string) *FileIO {
	f.historyFilePath = historyFilePath
	if f.writer == nil {
		f.writer = &fsio.RealWriter{}
	}
	return f
}

func (f *FileIO) Read() ([]Entry, error) {
	return parseFile(f.historyFilePath)
}

func (f *FileIO) Write(entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.historyFilePath), 0o700); err != nil {
		return err
	}

	return f.writer.WriteFile(f.historyFilePath, data)
}

func (f *FileIO) Delete() error {
	err := os.Remove(f.historyFilePath)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (f *FileIO) Update(fn func([]Entry) []Entry) error {
	if err := os.MkdirAll(filepath.Dir(f.historyFilePath), 0o700); err != nil {
		return err
	}

	lock := fsio.NewFileLock(f.historyFilePath + ".update")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	entries, err := f.Read()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return f.Write(fn(entries))
}

func parseFile(fileName string) ([]Entry, error) {
	var result []Entry

	buf, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(buf, &result); err != nil {
		return nil, err
	}

	return result, nil
}
