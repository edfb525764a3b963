// Package validate checks catalog objects for structural problems before
// publishing. It is a collaborator, not a gate: the graph layer never
// validates implicitly, callers run a pass when they want one.
package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/stacgraph/stacgraph/pkg/errors"
	"github.com/stacgraph/stacgraph/pkg/stac"
)

// ErrorRecord is one finding against one object.
type ErrorRecord struct {
	ObjectID string // id of the offending object
	Field    string // dotted path of the offending field, "" for whole-object findings
	Message  string // human-readable description
}

func (r ErrorRecord) String() string {
	if r.Field == "" {
		return fmt.Sprintf("%s: %s", r.ObjectID, r.Message)
	}
	return fmt.Sprintf("%s: %s: %s", r.ObjectID, r.Field, r.Message)
}

// Validator inspects a single object and reports findings. Implementations
// must not mutate the object.
type Validator interface {
	Validate(obj stac.Object) []ErrorRecord
}

// Structural checks the fields every catalog document needs regardless of
// extensions: identity, version, description on containers, datetime and
// asset hrefs on items.
type Structural struct{}

// Validate implements [Validator].
func (Structural) Validate(obj stac.Object) []ErrorRecord {
	var recs []ErrorRecord
	id := obj.ID()

	if id == "" {
		recs = append(recs, ErrorRecord{ObjectID: "(unnamed)", Field: "id", Message: "missing id"})
		id = "(unnamed)"
	}
	if strings.ContainsAny(id, "/\\") {
		recs = append(recs, ErrorRecord{ObjectID: id, Field: "id", Message: "id contains path separators"})
	}
	if obj.STACVersion() == "" {
		recs = append(recs, ErrorRecord{ObjectID: id, Field: "stac_version", Message: "missing stac_version"})
	}

	switch o := obj.(type) {
	case *stac.Collection:
		if o.Description() == "" {
			recs = append(recs, ErrorRecord{ObjectID: id, Field: "description", Message: "missing description"})
		}
		if o.License() == "" {
			recs = append(recs, ErrorRecord{ObjectID: id, Field: "license", Message: "missing license"})
		}
	case *stac.Catalog:
		if o.Description() == "" {
			recs = append(recs, ErrorRecord{ObjectID: id, Field: "description", Message: "missing description"})
		}
	case *stac.Item:
		recs = append(recs, validateItem(id, o)...)
	}
	return recs
}

func validateItem(id string, item *stac.Item) []ErrorRecord {
	var recs []ErrorRecord
	if _, ok := item.Properties()["datetime"]; !ok {
		recs = append(recs, ErrorRecord{ObjectID: id, Field: "properties.datetime", Message: "missing datetime"})
	}
	for _, key := range item.AssetKeys() {
		a, _ := item.Asset(key)
		if a.Href == "" {
			recs = append(recs, ErrorRecord{ObjectID: id, Field: "assets." + key + ".href", Message: "asset has no href"})
		}
	}
	return recs
}

// ValidateObject runs v against a single object and folds any findings
// into one VALIDATION_FAILED error, nil when clean.
func ValidateObject(v Validator, obj stac.Object) error {
	return fold(v.Validate(obj))
}

// ValidateAll runs v against every object reachable from root: the
// containers the walk visits and their items. Findings across the whole
// graph are folded into one VALIDATION_FAILED error.
func ValidateAll(ctx context.Context, r stac.Reader, v Validator, root *stac.Catalog) error {
	var recs []ErrorRecord
	err := root.Walk(ctx, r, func(cat stac.Container, _ []stac.Container, items []*stac.Item) error {
		recs = append(recs, v.Validate(cat)...)
		for _, item := range items {
			recs = append(recs, v.Validate(item)...)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return fold(recs)
}

func fold(recs []ErrorRecord) error {
	if len(recs) == 0 {
		return nil
	}
	lines := make([]string, len(recs))
	for i, r := range recs {
		lines[i] = r.String()
	}
	return errors.New(errors.ErrCodeValidation, "%d finding(s):\n%s", len(recs), strings.Join(lines, "\n"))
}
