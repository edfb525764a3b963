package stac

import (
	"context"
)

// FullCopy produces a structurally independent copy of the subgraph
// reachable from obj. Every distinct source object is copied exactly once,
// every link that pointed at a given source object points at the same
// copied instance, and reference cycles terminate: each copy is recorded
// in the per-invocation visited map before its links are recursed into.
//
// Unresolved child, item, and collection links are resolved through r
// first, since a copy must be self-contained. Unresolved root and parent
// links, and unresolved custom-rel links (which may point at non-STAC
// resources), are carried over as stored location strings.
//
// The copy's root receives a fresh identity cache seeded with all copied
// objects, fully decoupled from the source graph's cache.
func FullCopy(ctx context.Context, r Reader, obj Object) (Object, error) {
	visited := make(map[Object]Object)
	out, err := copyObject(ctx, r, obj.concrete(), visited)
	if err != nil {
		return nil, err
	}

	// Fresh copies never carry a cache; seed one on the copy's root.
	ic := NewIdentityCache()
	for _, copied := range visited {
		if err := ic.Register(copied); err != nil {
			return nil, err
		}
	}
	out.Root().setOwnedCache(ic)
	return out, nil
}

func copyObject(ctx context.Context, r Reader, obj Object, visited map[Object]Object) (Object, error) {
	if copied, ok := visited[obj]; ok {
		return copied, nil
	}

	copied := cloneShallow(obj)
	// Registering before recursing is the invariant that breaks cycles.
	visited[obj] = copied

	for _, l := range obj.Links() {
		switch {
		case l.IsResolved():
			target, err := copyObject(ctx, r, l.Target().concrete(), visited)
			if err != nil {
				return nil, err
			}
			nl := l.clone()
			nl.target = target
			copied.AddLink(nl)
		case fetchableRels[l.Rel]:
			target, err := l.Resolve(ctx, r)
			if err != nil {
				return nil, err
			}
			copiedTarget, err := copyObject(ctx, r, target.concrete(), visited)
			if err != nil {
				return nil, err
			}
			nl := l.clone()
			nl.target = copiedTarget
			copied.AddLink(nl)
		default:
			copied.AddLink(l.clone())
		}
	}
	return copied, nil
}

// cloneShallow copies an object's own state: identity, hrefs, and data
// fields, but no links.
func cloneShallow(obj Object) Object {
	var out Object
	switch o := obj.(type) {
	case *Collection:
		c := NewCollection(o.id, o.description)
		c.title = o.title
		c.license = o.license
		out = c
	case *Catalog:
		c := NewCatalog(o.id, o.description)
		c.title = o.title
		out = c
	case *Item:
		i := NewItem(o.id)
		i.properties = cloneMap(o.properties)
		for _, key := range o.assetKeys {
			i.SetAsset(key, o.assets[key].Clone())
		}
		out = i
	}

	src, dst := coreOf(obj), coreOf(out)
	dst.stacVersion = src.stacVersion
	dst.selfHref = src.selfHref
	dst.sourceHref = src.sourceHref
	dst.extra = cloneMap(src.extra)
	return out
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
