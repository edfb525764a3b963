package stac

import (
	"context"
	"path"

	"github.com/stacgraph/stacgraph/pkg/errors"
)

// NormalizeHrefs assigns a deterministic self href to every object
// reachable from c:
//
//   - the starting object: base/{id}.json
//   - catalogs and collections below it: {parentDir}/{id}/{id}.json
//   - items: {parentDir}/{id}.json, flat under the parent directory with
//     no per-item nesting; the asymmetry with catalogs is intentional
//
// Each reachable object is visited exactly once; shared objects keep the
// href assigned on first visit. Unresolved child and item links are
// resolved through r as the walk reaches them. Running twice with the same
// base yields identical hrefs.
func (c *Catalog) NormalizeHrefs(ctx context.Context, r Reader, base string) error {
	if base == "" {
		return errors.New(errors.ErrCodeInvalidHref, "normalize needs a base href")
	}
	visited := make(map[Object]bool)
	self := joinHref(base, defaultFileName(c.self))
	return normalizeFrom(ctx, r, c.self, self, visited)
}

func normalizeFrom(ctx context.Context, r Reader, obj Object, selfHref string, visited map[Object]bool) error {
	if visited[obj] {
		return nil
	}
	visited[obj] = true

	if ic := obj.Root().ownedCache(); ic != nil && obj.SelfHref() != selfHref {
		// Keep the href index in step with the assignment.
		ic.Remove(obj)
		obj.SetSelfHref(selfHref)
		_ = ic.Register(obj)
	} else {
		obj.SetSelfHref(selfHref)
	}

	container, ok := obj.(Container)
	if !ok {
		return nil
	}

	dir := parentDir(selfHref)
	for _, l := range container.Links() {
		switch l.Rel {
		case RelChild:
			child, err := l.Resolve(ctx, r)
			if err != nil {
				return err
			}
			childSelf := joinHref(dir, child.ID(), defaultFileName(child))
			if err := normalizeFrom(ctx, r, child, childSelf, visited); err != nil {
				return err
			}
		case RelItem:
			item, err := l.Resolve(ctx, r)
			if err != nil {
				return err
			}
			itemSelf := joinHref(dir, defaultFileName(item))
			if err := normalizeFrom(ctx, r, item, itemSelf, visited); err != nil {
				return err
			}
		}
	}
	return nil
}

// joinHref joins path parts under a base href, preserving any scheme
// prefix.
func joinHref(base string, parts ...string) string {
	prefix, p := splitScheme(base)
	return prefix + path.Join(append([]string{p}, parts...)...)
}

// parentDir returns the directory portion of an href.
func parentDir(href string) string {
	prefix, p := splitScheme(href)
	return prefix + path.Dir(p)
}
