package stac

// Asset is a reference to data associated with an item: imagery, metadata
// files, thumbnails. Asset hrefs resolve against the owning item's self
// href, never against any catalog ancestor.
type Asset struct {
	Href      string
	MediaType string
	Title     string
	Roles     []string
	// Extra preserves unknown asset fields for round-trip fidelity.
	Extra map[string]any
}

// Clone returns a deep copy of the asset.
func (a *Asset) Clone() *Asset {
	c := &Asset{
		Href:      a.Href,
		MediaType: a.MediaType,
		Title:     a.Title,
	}
	if a.Roles != nil {
		c.Roles = append([]string(nil), a.Roles...)
	}
	if a.Extra != nil {
		c.Extra = make(map[string]any, len(a.Extra))
		for k, v := range a.Extra {
			c.Extra[k] = v
		}
	}
	return c
}

// Item is a single catalog entry: one spatiotemporal asset record with a
// properties bag and a keyed set of asset references.
type Item struct {
	core
	properties map[string]any
	assets     map[string]*Asset
	assetKeys  []string
}

// NewItem creates a detached item. Attach it with [Catalog.AddItem].
func NewItem(id string) *Item {
	i := &Item{
		properties: map[string]any{},
		assets:     map[string]*Asset{},
	}
	i.core = newCore(i, id)
	return i
}

// Type returns TypeItem ("Feature").
func (i *Item) Type() ObjectType { return TypeItem }

// Properties returns the item's properties bag. Never nil.
func (i *Item) Properties() map[string]any { return i.properties }

// Fields routes extension accessors to the properties bag rather than the
// extra-field store.
func (i *Item) Fields() map[string]any { return i.properties }

// SetAsset stores an asset under key, preserving first-insertion order for
// serialization.
func (i *Item) SetAsset(key string, a *Asset) {
	if _, exists := i.assets[key]; !exists {
		i.assetKeys = append(i.assetKeys, key)
	}
	i.assets[key] = a
}

// Asset returns the asset stored under key.
func (i *Item) Asset(key string) (*Asset, bool) {
	a, ok := i.assets[key]
	return a, ok
}

// RemoveAsset deletes the asset stored under key.
func (i *Item) RemoveAsset(key string) {
	if _, ok := i.assets[key]; !ok {
		return
	}
	delete(i.assets, key)
	for n, k := range i.assetKeys {
		if k == key {
			i.assetKeys = append(i.assetKeys[:n], i.assetKeys[n+1:]...)
			break
		}
	}
}

// AssetKeys returns asset keys in insertion order.
func (i *Item) AssetKeys() []string {
	return append([]string(nil), i.assetKeys...)
}

// AssetHref computes the serialized href for the asset under key: relative
// to the item's self href unless absolute output is requested.
func (i *Item) AssetHref(key string, ct CatalogType) (string, bool) {
	a, ok := i.assets[key]
	if !ok {
		return "", false
	}
	abs := MakeAbsoluteHref(a.Href, i.SelfHref())
	if ct == AbsolutePublished {
		return abs, true
	}
	return MakeRelativeHref(abs, i.SelfHref()), true
}
