package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Cache is one write-once table: a directory of serialized blobs plus an
// in-memory index of the keys known to be on disk.
type Cache struct {
	dir  string
	keys map[string]struct{}
}

// Open ensures the table directory <root>/cache/<name> exists and reads its
// entries into the key index.
func Open(name, root string) (*Cache, error) {
	dir := filepath.Join(root, "cache", name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read cache dir %s: %w", dir, err)
	}
	keys := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		keys[entry.Name()] = struct{}{}
	}

	return &Cache{dir: dir, keys: keys}, nil
}

// Get looks up key and, when present, JSON-decodes the backing blob into
// value. The boolean reports whether the key was indexed; a decode failure
// on an indexed key is an error.
func (c *Cache) Get(key string, value any) (bool, error) {
	if _, ok := c.keys[key]; !ok {
		return false, nil
	}
	data, err := os.ReadFile(c.keyPath(key))
	if err != nil {
		return false, fmt.Errorf("read cache entry %s: %w", key, err)
	}
	if err := json.Unmarshal(data, value); err != nil {
		return false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return true, nil
}

// Put serializes value and writes it as the blob for key, then marks the
// key indexed. Panics if the key is already indexed: entries are write-once
// and callers must always Get before Put.
func (c *Cache) Put(key string, value any) error {
	if _, ok := c.keys[key]; ok {
		panic(fmt.Sprintf("cache: key %q already written; entries are write-once", key))
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	if err := os.WriteFile(c.keyPath(key), data, 0o644); err != nil {
		return fmt.Errorf("write cache entry %s: %w", key, err)
	}
	c.keys[key] = struct{}{}
	return nil
}

// Contains reports whether key is indexed without touching the blob.
func (c *Cache) Contains(key string) bool {
	_, ok := c.keys[key]
	return ok
}

// Len returns the number of indexed keys.
func (c *Cache) Len() int { return len(c.keys) }

func (c *Cache) keyPath(key string) string {
	return filepath.Join(c.dir, key)
}
