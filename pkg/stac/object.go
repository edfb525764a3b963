package stac

import (
	"context"
)

// DefaultSTACVersion is the STAC spec version written into new documents.
const DefaultSTACVersion = "1.0.0"

// ObjectType identifies the STAC object variant as declared in a document's
// "type" field. Items use "Feature" for GeoJSON compatibility.
type ObjectType string

const (
	TypeCatalog    ObjectType = "Catalog"
	TypeCollection ObjectType = "Collection"
	TypeItem       ObjectType = "Feature"
)

// Reader fetches the raw text of a catalog document by URI.
// Implementations live outside the core (see package stacio); resolution
// calls Read exactly once per unresolved link.
type Reader interface {
	Read(ctx context.Context, uri string) ([]byte, error)
}

// Writer persists the raw text of a catalog document at a URI.
type Writer interface {
	Write(ctx context.Context, uri string, data []byte) error
}

// ReadWriter combines Reader and Writer. Save operations need both: reading
// to enumerate children, writing to persist them.
type ReadWriter interface {
	Reader
	Writer
}

// Object is the closed variant set of graph nodes: *Catalog, *Collection,
// and *Item. The unexported method prevents implementations outside this
// package.
type Object interface {
	// ID returns the object's identifier, unique within its root's graph.
	ID() string
	// SetID changes the identifier. Change ids before attaching the object
	// to a graph; the identity cache is keyed by id at registration time.
	SetID(string)
	// Type returns the object's STAC type.
	Type() ObjectType
	// STACVersion returns the document's declared spec version.
	STACVersion() string
	// Links returns the object's links in insertion order. The returned
	// slice is the live backing store; do not mutate it directly.
	Links() []*Link
	// AddLink appends a link and claims ownership of it.
	AddLink(*Link)
	// RemoveLinks removes every link with the given rel.
	RemoveLinks(rel string)
	// FindLink returns the first link with the given rel, or nil.
	FindLink(rel string) *Link
	// SelfHref returns the location this object was loaded from or will be
	// persisted at. Empty until assigned or normalized.
	SelfHref() string
	// SetSelfHref assigns the object's persisted location.
	SetSelfHref(string)
	// Root returns the root of the graph this object belongs to. An object
	// with no resolved root link is its own root.
	Root() Object
	// SetRoot re-points the object's root link, rebuilding its cache
	// registration under the new root.
	SetRoot(Object)
	// ExtraFields returns unknown top-level document fields, preserved for
	// round-trip fidelity. Never nil.
	ExtraFields() map[string]any
	// Fields returns the key/value store extension wrappers read and write:
	// item properties for items, extra fields for catalogs and collections.
	Fields() map[string]any

	ownedCache() *IdentityCache
	setOwnedCache(*IdentityCache)
	concrete() Object
}

// Container is a catalog-like object that owns child and item links:
// implemented by *Catalog and *Collection.
type Container interface {
	Object
	// AddChild attaches a catalog or collection under this container.
	AddChild(Container) error
	// AddItem attaches an item under this container.
	AddItem(*Item) error
	// Children resolves and returns the container's child catalogs and
	// collections in link order.
	Children(ctx context.Context, r Reader) ([]Container, error)
	// Items resolves and returns the container's items in link order.
	Items(ctx context.Context, r Reader) ([]*Item, error)
}

// core carries the state shared by all object variants. Each variant embeds
// core and sets self to the concrete object so promoted methods can hand
// out the right reference.
type core struct {
	self        Object
	id          string
	stacVersion string
	selfHref    string
	// sourceHref is the location the object's document was fetched from.
	// It can differ from selfHref when the document carries an absolute
	// self link pointing at its published location.
	sourceHref string
	links      []*Link
	extra      map[string]any

	// cache is non-nil only while this object is the root of a graph.
	cache *IdentityCache
}

func newCore(self Object, id string) core {
	return core{
		self:        self,
		id:          id,
		stacVersion: DefaultSTACVersion,
		extra:       map[string]any{},
	}
}

func (c *core) ID() string            { return c.id }
func (c *core) SetID(id string)       { c.id = id }
func (c *core) STACVersion() string   { return c.stacVersion }
func (c *core) SelfHref() string      { return c.selfHref }
func (c *core) SetSelfHref(h string)  { c.selfHref = h }
func (c *core) Links() []*Link        { return c.links }
func (c *core) ExtraFields() map[string]any { return c.extra }

// Fields defaults to the extra-field store; *Item overrides this to expose
// its properties instead.
func (c *core) Fields() map[string]any { return c.extra }

func (c *core) AddLink(l *Link) {
	l.owner = c.self
	c.links = append(c.links, l)
}

func (c *core) RemoveLinks(rel string) {
	kept := c.links[:0]
	for _, l := range c.links {
		if l.Rel != rel {
			kept = append(kept, l)
		}
	}
	c.links = kept
}

func (c *core) FindLink(rel string) *Link {
	for _, l := range c.links {
		if l.Rel == rel {
			return l
		}
	}
	return nil
}

func (c *core) findLinks(rel string) []*Link {
	var out []*Link
	for _, l := range c.links {
		if l.Rel == rel {
			out = append(out, l)
		}
	}
	return out
}

// Root follows the resolved root link. An object without one is its own
// root; unresolved root links are ignored rather than fetched, since the
// root of an in-memory graph is always materialized.
func (c *core) Root() Object {
	if l := c.FindLink(RelRoot); l != nil && l.IsResolved() {
		return l.Target()
	}
	return c.self
}

// SetRoot re-points the root link and registers the object in the new
// root's cache. Passing the object itself (or nil) makes it self-rooted.
func (c *core) SetRoot(root Object) {
	c.RemoveLinks(RelRoot)
	if root == nil {
		root = c.self
	}
	c.AddLink(NewResolvedLink(RelRoot, root))
	if root != c.self {
		_ = cacheOf(root).Register(c.self)
	}
}

// Parent returns the resolved parent, or nil if the object has no parent
// or the parent link is unresolved.
func (c *core) Parent() Object {
	if l := c.FindLink(RelParent); l != nil && l.IsResolved() {
		return l.Target()
	}
	return nil
}

func (c *core) setParent(parent Object) {
	c.RemoveLinks(RelParent)
	c.AddLink(NewResolvedLink(RelParent, parent))
}

func (c *core) ownedCache() *IdentityCache      { return c.cache }
func (c *core) setOwnedCache(ic *IdentityCache) { c.cache = ic }
func (c *core) concrete() Object                { return c.self }
func (c *core) coreRef() *core                  { return c }

// coreOf exposes an object's shared state to in-package machinery.
func coreOf(o Object) *core {
	return o.(interface{ coreRef() *core }).coreRef()
}

// sourceOf returns the location an object's identity is anchored at: the
// href it was fetched from when known, its self href otherwise.
func sourceOf(o Object) string {
	if src := coreOf(o).sourceHref; src != "" {
		return src
	}
	return o.SelfHref()
}

// cacheOf returns the identity cache of obj's root, creating and seeding
// it on first use.
func cacheOf(obj Object) *IdentityCache {
	root := obj.Root()
	if ic := root.ownedCache(); ic != nil {
		return ic
	}
	ic := NewIdentityCache()
	_ = ic.Register(root)
	root.setOwnedCache(ic)
	return ic
}
