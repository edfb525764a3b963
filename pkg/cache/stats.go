package cache

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Stats summarizes the on-disk state of a FileCache.
type Stats struct {
	Entries int   // number of cached documents
	Bytes   int64 // total size on disk
}

// Stats walks the cache directory and reports entry count and total size.
// Entries counts documents only; Bytes includes expiry sidecars. Unreadable
// files are skipped rather than failing the whole walk.
func (c *FileCache) Stats() (Stats, error) {
	var s Stats
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if strings.HasSuffix(path, ".json") {
			s.Entries++
		}
		s.Bytes += info.Size()
		return nil
	})
	return s, err
}
