// Package publish loads publishing manifests and runs the publish
// pipeline: normalize hrefs to a target base, validate, and save under a
// catalog type. A manifest is a small TOML file checked in next to a
// catalog so repeated publishes stay reproducible.
package publish

import (
	"context"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/stacgraph/stacgraph/pkg/errors"
	"github.com/stacgraph/stacgraph/pkg/stac"
	"github.com/stacgraph/stacgraph/pkg/validate"
)

// Manifest describes one publish target.
//
//	base = "https://example.com/catalogs/landsat"
//	catalog_type = "relative-published"
//	validate = true
type Manifest struct {
	// Base is the href every object is normalized under.
	Base string `toml:"base"`
	// CatalogType selects the self-link and relative/absolute convention.
	CatalogType string `toml:"catalog_type"`
	// Validate runs the structural validator before anything is written.
	Validate bool `toml:"validate"`
}

// LoadManifest reads and checks a TOML manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read manifest %s", path)
	}
	return ParseManifest(data)
}

// ParseManifest decodes manifest TOML and checks required fields.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse manifest")
	}
	if m.Base == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "manifest has no base href")
	}
	if m.CatalogType == "" {
		m.CatalogType = string(stac.SelfContained)
	}
	if _, err := stac.ParseCatalogType(m.CatalogType); err != nil {
		return nil, err
	}
	return &m, nil
}

// Result reports what a publish run did.
type Result struct {
	Base        string
	CatalogType stac.CatalogType
	Duration    time.Duration
}

// Run publishes root per the manifest: normalize every href under the
// base, optionally validate, and save through rw. The graph is left
// normalized to the manifest base afterwards.
func Run(ctx context.Context, rw stac.ReadWriter, root *stac.Catalog, m *Manifest) (*Result, error) {
	started := time.Now()

	ct, err := stac.ParseCatalogType(m.CatalogType)
	if err != nil {
		return nil, err
	}
	if err := root.NormalizeHrefs(ctx, rw, m.Base); err != nil {
		return nil, err
	}
	if m.Validate {
		if err := validate.ValidateAll(ctx, rw, validate.Structural{}, root); err != nil {
			return nil, err
		}
	}
	if err := root.Save(ctx, rw, ct); err != nil {
		return nil, err
	}

	return &Result{
		Base:        m.Base,
		CatalogType: ct,
		Duration:    time.Since(started),
	}, nil
}
