package stac

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/stacgraph/stacgraph/pkg/errors"
)

// MediaTypeJSON is the media type emitted for structural links.
const MediaTypeJSON = "application/json"

// Decode deserializes a single catalog document into an object. sourceHref
// records where the document was read from and becomes the object's self
// href unless the document carries an absolute self link of its own.
//
// Fails with INVALID_STAC_TYPE when the declared type or version is
// unrecognized, and INVALID_INPUT for malformed JSON or a missing id.
func Decode(data []byte, sourceHref string) (Object, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed document at %s", sourceHref)
	}
	return DecodeDocument(doc, sourceHref)
}

// DecodeDocument builds an object from an already parsed document.
// The document map is consumed: recognized keys are lifted into typed
// state, everything else lands in the object's extra-field store.
func DecodeDocument(doc map[string]any, sourceHref string) (Object, error) {
	typ, ok := doc["type"].(string)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidSTACType, "document at %s has no type field", sourceHref)
	}

	id, ok := doc["id"].(string)
	if !ok || id == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document at %s has no id", sourceHref)
	}

	version := DefaultSTACVersion
	if raw, present := doc["stac_version"]; present {
		version, ok = raw.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidSTACType, "document at %s has a non-string stac_version", sourceHref)
		}
	}

	var obj Object
	switch ObjectType(typ) {
	case TypeCatalog:
		c := NewCatalog(id, popString(doc, "description"))
		c.title = popString(doc, "title")
		obj = c
	case TypeCollection:
		c := NewCollection(id, popString(doc, "description"))
		c.title = popString(doc, "title")
		c.license = popString(doc, "license")
		obj = c
	case TypeItem:
		i := NewItem(id)
		if props, ok := doc["properties"].(map[string]any); ok {
			i.properties = props
		}
		delete(doc, "properties")
		decodeAssets(i, doc)
		obj = i
	default:
		return nil, errors.New(errors.ErrCodeInvalidSTACType, "unrecognized type %q at %s", typ, sourceHref)
	}

	delete(doc, "type")
	delete(doc, "id")
	delete(doc, "stac_version")

	cr := coreOf(obj)
	cr.stacVersion = version
	cr.selfHref = sourceHref
	cr.sourceHref = sourceHref

	if rawLinks, ok := doc["links"].([]any); ok {
		for _, raw := range rawLinks {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			l := decodeLink(entry)
			if l.Rel == RelSelf {
				// Self location is held as state, not as a stored link.
				if href := l.Href(); IsAbsoluteHref(href) {
					cr.selfHref = href
				}
				continue
			}
			obj.AddLink(l)
		}
	}
	delete(doc, "links")

	for k, v := range doc {
		cr.extra[k] = v
	}
	return obj, nil
}

// popString removes key from m and returns its string value, or "" when
// absent or not a string.
func popString(m map[string]any, key string) string {
	v, ok := m[key].(string)
	if !ok {
		return ""
	}
	delete(m, key)
	return v
}

func decodeLink(entry map[string]any) *Link {
	l := NewLink(popString(entry, "rel"), popString(entry, "href"))
	l.MediaType = popString(entry, "type")
	l.Title = popString(entry, "title")
	if len(entry) > 0 {
		l.Extra = entry
	}
	return l
}

func decodeAssets(i *Item, doc map[string]any) {
	rawAssets, ok := doc["assets"].(map[string]any)
	delete(doc, "assets")
	if !ok {
		return
	}
	for _, key := range slices.Sorted(maps.Keys(rawAssets)) {
		entry, ok := rawAssets[key].(map[string]any)
		if !ok {
			continue
		}
		a := &Asset{
			Href:      popString(entry, "href"),
			MediaType: popString(entry, "type"),
			Title:     popString(entry, "title"),
		}
		if roles, ok := entry["roles"].([]any); ok {
			for _, r := range roles {
				if s, ok := r.(string); ok {
					a.Roles = append(a.Roles, s)
				}
			}
			delete(entry, "roles")
		}
		if len(entry) > 0 {
			a.Extra = entry
		}
		i.SetAsset(key, a)
	}
}

// EncodeDocument serializes obj into its persisted document form under the
// given catalog type. Self hrefs must already be assigned when the catalog
// type calls for relative output; see [Catalog.NormalizeHrefs].
func EncodeDocument(obj Object, ct CatalogType) (map[string]any, error) {
	relativeOut := ct != AbsolutePublished
	if relativeOut && obj.SelfHref() == "" {
		return nil, errors.New(errors.ErrCodeInvalidHref,
			"cannot emit relative hrefs for %q: self href not assigned", obj.ID())
	}

	doc := baseDocument(obj)
	doc["links"] = encodeLinks(obj, ct)

	if item, ok := obj.(*Item); ok {
		doc["assets"] = encodeAssets(item, ct)
	}
	return doc, nil
}

// Document serializes obj without applying a publishing convention: the
// self link is included whenever a self href is known, and each link
// honors its own relativity hint. Used for validation and display.
func Document(obj Object) map[string]any {
	doc := baseDocument(obj)

	links := make([]map[string]any, 0, len(obj.Links())+1)
	if href := obj.SelfHref(); href != "" {
		links = append(links, map[string]any{"rel": RelSelf, "href": href, "type": MediaTypeJSON})
	}
	for _, l := range obj.Links() {
		href := l.AbsoluteHref()
		if l.IsRelative() && obj.SelfHref() != "" {
			href = MakeRelativeHref(href, obj.SelfHref())
		}
		links = append(links, encodeLink(l, href))
	}
	doc["links"] = links

	if item, ok := obj.(*Item); ok {
		assets := make(map[string]any, len(item.assets))
		for key, a := range item.assets {
			assets[key] = encodeAsset(a, a.Href)
		}
		doc["assets"] = assets
	}
	return doc
}

// Marshal serializes obj to indented JSON under the given catalog type.
func Marshal(obj Object, ct CatalogType) ([]byte, error) {
	doc, err := EncodeDocument(obj, ct)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %q", obj.ID())
	}
	return append(data, '\n'), nil
}

func baseDocument(obj Object) map[string]any {
	doc := make(map[string]any, len(obj.ExtraFields())+8)
	for k, v := range obj.ExtraFields() {
		doc[k] = v
	}
	doc["type"] = string(obj.Type())
	doc["stac_version"] = obj.STACVersion()
	doc["id"] = obj.ID()

	switch o := obj.(type) {
	case *Collection:
		doc["description"] = o.description
		if o.title != "" {
			doc["title"] = o.title
		}
		if o.license != "" {
			doc["license"] = o.license
		}
	case *Catalog:
		doc["description"] = o.description
		if o.title != "" {
			doc["title"] = o.title
		}
	case *Item:
		doc["properties"] = o.properties
	}
	return doc
}

func encodeLinks(obj Object, ct CatalogType) []map[string]any {
	links := make([]map[string]any, 0, len(obj.Links())+1)

	includeSelf := ct == AbsolutePublished ||
		(ct == RelativePublished && obj.Root() == obj)
	if includeSelf && obj.SelfHref() != "" {
		links = append(links, map[string]any{
			"rel":  RelSelf,
			"href": obj.SelfHref(),
			"type": MediaTypeJSON,
		})
	}

	for _, l := range obj.Links() {
		if l.Rel == RelSelf {
			continue
		}
		href := l.AbsoluteHref()
		if ct != AbsolutePublished {
			href = MakeRelativeHref(href, obj.SelfHref())
		}
		links = append(links, encodeLink(l, href))
	}
	return links
}

func encodeLink(l *Link, href string) map[string]any {
	entry := make(map[string]any, len(l.Extra)+4)
	for k, v := range l.Extra {
		entry[k] = v
	}
	entry["rel"] = l.Rel
	entry["href"] = href
	if l.MediaType != "" {
		entry["type"] = l.MediaType
	}
	if l.Title != "" {
		entry["title"] = l.Title
	}
	return entry
}

func encodeAssets(item *Item, ct CatalogType) map[string]any {
	assets := make(map[string]any, len(item.assets))
	for _, key := range item.assetKeys {
		href, _ := item.AssetHref(key, ct)
		assets[key] = encodeAsset(item.assets[key], href)
	}
	return assets
}

func encodeAsset(a *Asset, href string) map[string]any {
	entry := make(map[string]any, len(a.Extra)+4)
	for k, v := range a.Extra {
		entry[k] = v
	}
	entry["href"] = href
	if a.MediaType != "" {
		entry["type"] = a.MediaType
	}
	if a.Title != "" {
		entry["title"] = a.Title
	}
	if len(a.Roles) > 0 {
		entry["roles"] = a.Roles
	}
	return entry
}
