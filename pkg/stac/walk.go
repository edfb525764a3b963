package stac

import (
	"context"
)

// Walk traverses the catalog tree depth-first, calling visit once per
// reachable container with that container's resolved child catalogs and
// items. Each call starts a fresh traversal and visits each container
// exactly once, so shared subtrees are not re-entered. Child and item
// links are resolved lazily through r as the walk reaches them; any
// resolution failure aborts the whole traversal. Returning an error from
// visit stops the walk and surfaces that error.
func (c *Catalog) Walk(ctx context.Context, r Reader, visit func(cat Container, children []Container, items []*Item) error) error {
	visited := make(map[Object]bool)
	return walkFrom(ctx, r, c.self.(Container), visit, visited)
}

func walkFrom(ctx context.Context, r Reader, cat Container, visit func(Container, []Container, []*Item) error, visited map[Object]bool) error {
	if visited[cat] {
		return nil
	}
	visited[cat] = true

	if err := ctx.Err(); err != nil {
		return err
	}

	children, err := cat.Children(ctx, r)
	if err != nil {
		return err
	}
	items, err := cat.Items(ctx, r)
	if err != nil {
		return err
	}

	if err := visit(cat, children, items); err != nil {
		return err
	}
	for _, child := range children {
		if err := walkFrom(ctx, r, child, visit, visited); err != nil {
			return err
		}
	}
	return nil
}

// MapItems copies the catalog tree and rewrites the copy's items through
// fn. For each item, fn may return zero, one, or many replacement items;
// replacements are spliced into the owning container's link sequence at
// the original item's position, so fan-out preserves ordering. The source
// graph is left untouched.
func (c *Catalog) MapItems(ctx context.Context, r Reader, fn func(*Item) ([]*Item, error)) (Container, error) {
	copied, err := FullCopy(ctx, r, c.self)
	if err != nil {
		return nil, err
	}
	croot := copied.(Container)

	err = asCatalog(croot).Walk(ctx, r, func(cur Container, _ []Container, _ []*Item) error {
		return remapItems(ctx, r, cur, fn)
	})
	if err != nil {
		return nil, err
	}
	return croot, nil
}

// remapItems rebuilds cur's link sequence, replacing each item link with
// links to fn's output in place.
func remapItems(ctx context.Context, r Reader, cur Container, fn func(*Item) ([]*Item, error)) error {
	cc := coreOf(cur)
	root := cur.Root()
	ic := cacheOf(root)

	out := make([]*Link, 0, len(cc.links))
	for _, l := range cc.links {
		if l.Rel != RelItem {
			out = append(out, l)
			continue
		}
		obj, err := l.Resolve(ctx, r)
		if err != nil {
			return err
		}
		item, ok := obj.(*Item)
		if !ok {
			out = append(out, l)
			continue
		}

		reps, err := fn(item)
		if err != nil {
			return err
		}

		kept := false
		for _, rep := range reps {
			if rep == item {
				kept = true
				break
			}
		}
		// A dropped or fully replaced item frees its id before any
		// replacement registers, so a fresh item may reuse it.
		if !kept {
			ic.Remove(item)
		}

		for _, rep := range reps {
			if rep == item {
				out = append(out, l)
				continue
			}
			if err := ic.Register(rep); err != nil {
				return err
			}
			rep.RemoveLinks(RelRoot)
			rep.AddLink(NewResolvedLink(RelRoot, root))
			rep.RemoveLinks(RelParent)
			rep.AddLink(NewResolvedLink(RelParent, cur))
			nl := NewResolvedLink(RelItem, rep)
			nl.owner = cur
			out = append(out, nl)
		}
	}
	cc.links = out
	return nil
}

// asCatalog unwraps a container to its catalog core for methods defined
// there.
func asCatalog(c Container) *Catalog {
	switch o := c.(type) {
	case *Catalog:
		return o
	case *Collection:
		return &o.Catalog
	}
	return nil
}
