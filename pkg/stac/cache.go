package stac

import (
	"github.com/stacgraph/stacgraph/pkg/errors"
)

// IdentityCache is the root-scoped identity index of a graph: it maps each
// object id (and source href, when known) to the single in-memory instance
// carrying that id. Every resolved object reachable from a root appears at
// most once in that root's cache, and every link resolving to an id yields
// the same instance.
//
// The cache holds no ownership beyond the graph itself and is not safe for
// concurrent mutation; all objects sharing a root must be accessed from a
// context that serializes resolution.
type IdentityCache struct {
	byID   map[string]Object
	byHref map[string]Object
}

// NewIdentityCache creates an empty identity cache.
func NewIdentityCache() *IdentityCache {
	return &IdentityCache{
		byID:   make(map[string]Object),
		byHref: make(map[string]Object),
	}
}

// GetByID returns the cached instance carrying the given id.
func (c *IdentityCache) GetByID(id string) (Object, bool) {
	obj, ok := c.byID[id]
	return obj, ok
}

// GetByHref returns the instance loaded from or assigned to the given
// location, allowing resolution to skip a fetch entirely.
func (c *IdentityCache) GetByHref(href string) (Object, bool) {
	if href == "" {
		return nil, false
	}
	obj, ok := c.byHref[href]
	return obj, ok
}

// Register indexes obj by id and by location: the self href and, when the
// object was fetched, the source href. Both locations map to the same
// instance, so a document whose self link differs from its fetch URI stays
// reachable under either. Registering the same instance twice is a no-op;
// registering a different instance under an already-taken id is a
// DUPLICATE_ID graph-integrity error.
func (c *IdentityCache) Register(obj Object) error {
	id := obj.ID()
	if existing, ok := c.byID[id]; ok && existing != obj {
		return errors.New(errors.ErrCodeDuplicateID, "id %q is already registered for a different object", id)
	}
	c.byID[id] = obj
	if href := obj.SelfHref(); href != "" {
		c.byHref[href] = obj
	}
	if src := coreOf(obj).sourceHref; src != "" {
		c.byHref[src] = obj
	}
	return nil
}

// Remove drops obj from every index. Required when detaching an object to
// a different root, to avoid stale cross-root entries.
func (c *IdentityCache) Remove(obj Object) {
	if existing, ok := c.byID[obj.ID()]; ok && existing == obj {
		delete(c.byID, obj.ID())
	}
	for _, href := range []string{obj.SelfHref(), coreOf(obj).sourceHref} {
		if href == "" {
			continue
		}
		if existing, ok := c.byHref[href]; ok && existing == obj {
			delete(c.byHref, href)
		}
	}
}

// Len returns the number of registered objects.
func (c *IdentityCache) Len() int { return len(c.byID) }
