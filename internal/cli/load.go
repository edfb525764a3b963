package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/stacgraph/stacgraph/pkg/cache"
	"github.com/stacgraph/stacgraph/pkg/errors"
	"github.com/stacgraph/stacgraph/pkg/stac"
	"github.com/stacgraph/stacgraph/pkg/stacio"
)

// appName is the application name used for directories and display.
const appName = "stacgraph"

// defaultCacheTTL bounds how long HTTP responses are reused.
const defaultCacheTTL = time.Hour

// loadCatalog reads and decodes the catalog at href, picking the storage
// backend from the href's scheme. The returned ReadWriter serves the rest
// of the command's resolution and saving.
func loadCatalog(ctx context.Context, href string, noCache bool) (*stac.Catalog, stac.ReadWriter, error) {
	rw := newIO(href, noCache)

	data, err := rw.Read(ctx, href)
	if err != nil {
		return nil, nil, err
	}
	obj, err := stac.Decode(data, href)
	if err != nil {
		return nil, nil, err
	}
	cat, ok := obj.(*stac.Catalog)
	if !ok {
		if col, ok := obj.(*stac.Collection); ok {
			return &col.Catalog, rw, nil
		}
		return nil, nil, errors.New(errors.ErrCodeInvalidSTACType,
			"%s is a %s, expected a catalog or collection", href, obj.Type())
	}
	return cat, rw, nil
}

// newIO picks the document store for href and wires the response cache
// onto HTTP backends.
func newIO(href string, noCache bool) stac.ReadWriter {
	return stacio.ForHref(href, stacio.WithCache(newCache(noCache), defaultCacheTTL))
}

func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return c
}

// cacheDir returns the cache directory using XDG standard (~/.cache/stacgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
