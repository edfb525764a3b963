package stac

import (
	"context"

	"github.com/stacgraph/stacgraph/pkg/errors"
)

// Link rel types with structural meaning to the graph. Any other rel is
// carried through serialization untouched.
const (
	RelRoot       = "root"
	RelParent     = "parent"
	RelSelf       = "self"
	RelChild      = "child"
	RelItem       = "item"
	RelCollection = "collection"
)

// fetchableRels are the descendant rels a copy may fetch on demand. Root
// and parent links point back up the tree being copied, and custom rels
// may point at non-STAC resources (license PDFs, thumbnails); both are
// only followed once already resolved.
var fetchableRels = map[string]bool{
	RelChild:      true,
	RelItem:       true,
	RelCollection: true,
}

// Link is a typed, directed edge from one object to another. It holds
// either an unresolved location string or a resolved object reference;
// the transition from unresolved to resolved is one-way.
type Link struct {
	Rel       string
	MediaType string
	Title     string
	// Extra preserves unknown link fields for round-trip fidelity.
	Extra map[string]any

	href     string
	target   Object
	owner    Object
	relative bool
}

// NewLink creates an unresolved link to the given location. The relativity
// hint is taken from the href's syntax; override it with SetRelative.
func NewLink(rel, href string) *Link {
	return &Link{Rel: rel, href: href, relative: !IsAbsoluteHref(href)}
}

// NewResolvedLink creates a link already pointing at an in-memory object.
func NewResolvedLink(rel string, target Object) *Link {
	return &Link{Rel: rel, target: target, relative: true}
}

// Owner returns the object this link belongs to, set by [Object.AddLink].
func (l *Link) Owner() Object { return l.owner }

// IsResolved reports whether the link holds an in-memory target.
func (l *Link) IsResolved() bool { return l.target != nil }

// Target returns the resolved object, or nil while unresolved.
func (l *Link) Target() Object { return l.target }

// Href returns the link's location: the target's self href once resolved,
// otherwise the stored location string.
func (l *Link) Href() string {
	if l.target != nil && l.target.SelfHref() != "" {
		return l.target.SelfHref()
	}
	return l.href
}

// AbsoluteHref returns the link's location resolved against the owner's
// self href when the stored form is relative.
func (l *Link) AbsoluteHref() string {
	href := l.Href()
	if l.owner != nil {
		return MakeAbsoluteHref(href, l.owner.SelfHref())
	}
	return href
}

// IsRelative reports the serialization hint: whether the link prefers a
// relative href on output. Independent of the stored href's syntax.
func (l *Link) IsRelative() bool { return l.relative }

// SetRelative overrides the serialization hint.
func (l *Link) SetRelative(relative bool) { l.relative = relative }

// Resolve returns the link's target object, materializing it if necessary.
//
// Resolution is idempotent and performs I/O at most once per link:
//   - an already resolved link returns its held reference with no side effect,
//   - a target cached in the owner's root (reached earlier by any path)
//     is returned without I/O,
//   - otherwise the document is fetched through r, decoded, registered in
//     the root's identity cache, and the link flips to resolved.
//
// Fails with UNRESOLVED_LINK when the fetch fails, INVALID_STAC_TYPE when
// the document's type is unrecognized, and DUPLICATE_ID when the decoded
// id is already cached for a different document. Instance identity wins
// over the most recent read: a freshly fetched copy of an already cached
// document is discarded.
func (l *Link) Resolve(ctx context.Context, r Reader) (Object, error) {
	if l.target != nil {
		return l.target, nil
	}
	if l.owner == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot resolve %q link: link has no owner", l.Rel)
	}

	abs := l.AbsoluteHref()
	root := l.owner.Root()
	ic := cacheOf(root)

	if cached, ok := ic.GetByHref(abs); ok {
		l.target = cached
		return cached, nil
	}
	if r == nil {
		return nil, errors.New(errors.ErrCodeUnresolvedLink, "cannot resolve %q link to %s: no reader", l.Rel, abs)
	}

	data, err := r.Read(ctx, abs)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnresolvedLink, err, "cannot resolve %q link to %s", l.Rel, abs)
	}

	obj, err := Decode(data, abs)
	if err != nil {
		return nil, err
	}

	if cached, ok := ic.GetByID(obj.ID()); ok {
		if sourceOf(cached) == abs {
			// Reached by a different path; the cached instance wins.
			l.target = cached
			return cached, nil
		}
		return nil, errors.New(errors.ErrCodeDuplicateID,
			"id %q at %s already resolved from %s", obj.ID(), abs, sourceOf(cached))
	}

	obj.SetRoot(root)
	if err := ic.Register(obj); err != nil {
		return nil, err
	}
	l.target = obj
	return obj, nil
}

// clone returns a copy of the link with the same state but no owner.
func (l *Link) clone() *Link {
	c := &Link{
		Rel:       l.Rel,
		MediaType: l.MediaType,
		Title:     l.Title,
		href:      l.href,
		target:    l.target,
		relative:  l.relative,
	}
	if l.Extra != nil {
		c.Extra = make(map[string]any, len(l.Extra))
		for k, v := range l.Extra {
			c.Extra[k] = v
		}
	}
	return c
}
