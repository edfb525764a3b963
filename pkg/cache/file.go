package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores cached documents as files under a directory. Each entry
// is the raw document bytes, so a cached catalog read is itself inspectable
// JSON on disk. Expiry, when set, lives in a small sidecar file next to
// the document.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves a document from the cache. Expired or unreadable entries
// are removed and reported as a miss.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	if c.expired(path) {
		c.remove(path)
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a document in the cache. A ttl of zero means the entry never
// expires.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	meta := metaPath(path)
	if ttl <= 0 {
		// A re-Set without ttl must not inherit an older expiry.
		_ = os.Remove(meta)
		return nil
	}
	expiresAt := time.Now().Add(ttl).Format(time.RFC3339Nano)
	return os.WriteFile(meta, []byte(expiresAt), 0644)
}

// Delete removes an entry. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	c.remove(c.path(key))
	return nil
}

// Close does nothing for a file cache.
func (c *FileCache) Close() error {
	return nil
}

// expired reports whether the entry at path carries an expiry in the past.
// Entries without a sidecar never expire; an unparseable sidecar counts
// as expired.
func (c *FileCache) expired(path string) bool {
	raw, err := os.ReadFile(metaPath(path))
	if err != nil {
		return false
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		return true
	}
	return time.Now().After(expiresAt)
}

func (c *FileCache) remove(path string) {
	_ = os.Remove(path)
	_ = os.Remove(metaPath(path))
}

// path converts a cache key to a file path. Keys are URIs; hashing them
// keeps the filename filesystem-safe, and the first two hex chars shard
// entries across subdirectories.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:]+".json")
}

func metaPath(path string) string {
	return path + ".expiry"
}

var _ Cache = (*FileCache)(nil)
