package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"time"
)

// Cache keeps the last pre-patch content of each document, keyed by its
// absolute path.
type Cache struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Cache {
	return &Cache{
		store: store,
		now:   time.Now,
	}
}

func (c *Cache) SaveBackup(path, content string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	entry := Entry{
		Path:      abs,
		Content:   content,
		UpdatedAt: c.now(),
	}

	bytes, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return c.store.Set(hash(abs), bytes)
}

func (c *Cache) GetBackup(path string) (Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Entry{}, err
	}

	raw, err := c.store.Get(hash(abs))
	if err != nil {
		return Entry{}, err
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Entry{}, err
	}

	return entry, nil
}

func (c *Cache) DeleteBackup(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	return c.store.Delete(hash(abs))
}

func hash(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}
