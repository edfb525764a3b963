package stac

import (
	"context"

	"github.com/stacgraph/stacgraph/pkg/errors"
)

// Save writes every object reachable from c as one JSON document at its
// self href, honoring the catalog type's self-link and relative/absolute
// rules. Objects that still lack a self href are assigned one implicitly,
// derived from their parent's directory with the same rules as
// [Catalog.NormalizeHrefs]; the root itself must already have one.
//
// Each reachable object is written exactly once. Resolution of child and
// item links goes through rw's Reader side; any failure aborts the save.
func (c *Catalog) Save(ctx context.Context, rw ReadWriter, ct CatalogType) error {
	if c.SelfHref() == "" {
		return errors.New(errors.ErrCodeInvalidHref,
			"catalog %q has no self href; call NormalizeHrefs or SetSelfHref first", c.id)
	}
	visited := make(map[Object]bool)
	return saveFrom(ctx, rw, c.self, ct, visited)
}

func saveFrom(ctx context.Context, rw ReadWriter, obj Object, ct CatalogType, visited map[Object]bool) error {
	if visited[obj] {
		return nil
	}
	visited[obj] = true

	if container, ok := obj.(Container); ok {
		dir := parentDir(obj.SelfHref())
		for _, l := range container.Links() {
			if l.Rel != RelChild && l.Rel != RelItem {
				continue
			}
			target, err := l.Resolve(ctx, rw)
			if err != nil {
				return err
			}
			if target.SelfHref() == "" {
				if l.Rel == RelChild {
					target.SetSelfHref(joinHref(dir, target.ID(), defaultFileName(target)))
				} else {
					target.SetSelfHref(joinHref(dir, defaultFileName(target)))
				}
			}
			if err := saveFrom(ctx, rw, target, ct, visited); err != nil {
				return err
			}
		}
	}

	data, err := Marshal(obj, ct)
	if err != nil {
		return err
	}
	if err := rw.Write(ctx, obj.SelfHref(), data); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", obj.SelfHref())
	}
	return nil
}
