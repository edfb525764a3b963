package stac

import (
	"context"

	"github.com/stacgraph/stacgraph/pkg/errors"
)

// Catalog is a grouping node: it owns child catalogs/collections and items
// through typed links. A catalog with no resolved root link is the root of
// its own graph and owns the graph's identity cache.
type Catalog struct {
	core
	title       string
	description string
}

// NewCatalog creates a detached, self-rooted catalog.
func NewCatalog(id, description string) *Catalog {
	c := &Catalog{description: description}
	c.core = newCore(c, id)
	return c
}

// Type returns TypeCatalog.
func (c *Catalog) Type() ObjectType { return TypeCatalog }

// Title returns the optional display title.
func (c *Catalog) Title() string { return c.title }

// SetTitle sets the display title.
func (c *Catalog) SetTitle(t string) { c.title = t }

// Description returns the catalog description.
func (c *Catalog) Description() string { return c.description }

// SetDescription sets the catalog description.
func (c *Catalog) SetDescription(d string) { c.description = d }

// AddChild attaches a catalog or collection under c: the child inherits
// c's root, gains a parent link, and is registered, along with its
// already-resolved descendants, in the root's identity cache. Fails with
// DUPLICATE_ID if any attached id is already taken by a different object.
func (c *Catalog) AddChild(child Container) error {
	if err := attach(child, c.self); err != nil {
		return err
	}
	c.AddLink(NewResolvedLink(RelChild, child))
	return nil
}

// AddItem attaches an item under c, inheriting c's root.
func (c *Catalog) AddItem(item *Item) error {
	if err := attach(item, c.self); err != nil {
		return err
	}
	c.AddLink(NewResolvedLink(RelItem, item))
	return nil
}

// attach wires obj (and its resolved descendants) into parent's graph:
// parent link, root link, and cache registration for the whole subtree.
func attach(obj Object, parent Object) error {
	root := parent.Root()
	ic := cacheOf(root)

	var register func(o Object) error
	register = func(o Object) error {
		if err := ic.Register(o); err != nil {
			return err
		}
		o.RemoveLinks(RelRoot)
		o.AddLink(NewResolvedLink(RelRoot, root))
		for _, l := range o.Links() {
			if (l.Rel == RelChild || l.Rel == RelItem) && l.IsResolved() {
				if err := register(l.Target()); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := register(obj); err != nil {
		return err
	}

	obj.RemoveLinks(RelParent)
	obj.AddLink(NewResolvedLink(RelParent, parent))

	// The subtree no longer owns a cache of its own.
	obj.setOwnedCache(nil)
	return nil
}

// RemoveChild detaches the child with the given id. The detached subtree
// becomes self-rooted with a freshly seeded identity cache.
func (c *Catalog) RemoveChild(id string) bool {
	return c.removeLinkTo(RelChild, id)
}

// RemoveItem detaches the item with the given id.
func (c *Catalog) RemoveItem(id string) bool {
	return c.removeLinkTo(RelItem, id)
}

func (c *Catalog) removeLinkTo(rel, id string) bool {
	for n, l := range c.links {
		if l.Rel != rel || !l.IsResolved() || l.Target().ID() != id {
			continue
		}
		target := l.Target()
		c.links = append(c.links[:n], c.links[n+1:]...)
		detach(target, c.Root())
		return true
	}
	return false
}

// detach re-roots obj onto itself and removes its subtree from the old
// root's cache, preventing stale cross-root entries.
func detach(obj Object, oldRoot Object) {
	old := cacheOf(oldRoot)
	ic := NewIdentityCache()

	var reseed func(o Object)
	reseed = func(o Object) {
		old.Remove(o)
		_ = ic.Register(o)
		o.RemoveLinks(RelRoot)
		o.AddLink(NewResolvedLink(RelRoot, obj))
		for _, l := range o.Links() {
			if (l.Rel == RelChild || l.Rel == RelItem) && l.IsResolved() {
				reseed(l.Target())
			}
		}
	}
	reseed(obj)

	obj.RemoveLinks(RelParent)
	obj.setOwnedCache(ic)
}

// Children resolves the catalog's child links in insertion order.
func (c *Catalog) Children(ctx context.Context, r Reader) ([]Container, error) {
	var out []Container
	for _, l := range c.findLinks(RelChild) {
		obj, err := l.Resolve(ctx, r)
		if err != nil {
			return nil, err
		}
		child, ok := obj.(Container)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidSTACType,
				"child link of %q resolved to %s, want Catalog or Collection", c.id, obj.Type())
		}
		out = append(out, child)
	}
	return out, nil
}

// Items resolves the catalog's item links in insertion order.
func (c *Catalog) Items(ctx context.Context, r Reader) ([]*Item, error) {
	var out []*Item
	for _, l := range c.findLinks(RelItem) {
		obj, err := l.Resolve(ctx, r)
		if err != nil {
			return nil, err
		}
		item, ok := obj.(*Item)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidSTACType,
				"item link of %q resolved to %s, want Feature", c.id, obj.Type())
		}
		out = append(out, item)
	}
	return out, nil
}

var (
	_ Container = (*Catalog)(nil)
	_ Container = (*Collection)(nil)
)
