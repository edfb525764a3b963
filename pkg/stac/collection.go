package stac

// Collection is a catalog variant whose entries share schema: it carries
// the catalog hierarchy plus collection-level metadata. License, extent,
// summaries, and providers round-trip through the extra-field store; the
// graph core does not interpret them.
type Collection struct {
	Catalog
	license string
}

// NewCollection creates a detached, self-rooted collection.
func NewCollection(id, description string) *Collection {
	c := &Collection{}
	c.Catalog = Catalog{description: description}
	c.core = newCore(c, id)
	return c
}

// Type returns TypeCollection.
func (c *Collection) Type() ObjectType { return TypeCollection }

// License returns the collection's license identifier.
func (c *Collection) License() string { return c.license }

// SetLicense sets the collection's license identifier.
func (c *Collection) SetLicense(l string) { c.license = l }
