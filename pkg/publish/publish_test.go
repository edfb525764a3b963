package publish

import (
	"context"
	"strings"
	"testing"

	"github.com/stacgraph/stacgraph/pkg/errors"
	"github.com/stacgraph/stacgraph/pkg/stac"
	"github.com/stacgraph/stacgraph/pkg/stacio"
)

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(`
base = "https://example.com/cat"
catalog_type = "relative-published"
validate = true
`))
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}
	if m.Base != "https://example.com/cat" || !m.Validate {
		t.Errorf("manifest = %+v", m)
	}
	if m.CatalogType != "relative-published" {
		t.Errorf("catalog type = %q", m.CatalogType)
	}
}

func TestParseManifestDefaults(t *testing.T) {
	m, err := ParseManifest([]byte(`base = "/out"`))
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}
	if m.CatalogType != string(stac.SelfContained) {
		t.Errorf("default catalog type = %q, want SELF_CONTAINED", m.CatalogType)
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing base", `catalog_type = "self-contained"`},
		{"bad catalog type", "base = \"/out\"\ncatalog_type = \"published\""},
		{"bad toml", `base =`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseManifest([]byte(tt.in)); err == nil {
				t.Error("ParseManifest() expected error")
			}
		})
	}
}

func TestRun(t *testing.T) {
	root := stac.NewCatalog("root", "d")
	item := stac.NewItem("a")
	item.Properties()["datetime"] = "2020-01-01T00:00:00Z"
	if err := root.AddItem(item); err != nil {
		t.Fatal(err)
	}

	mio := stacio.NewMemoryIO()
	m := &Manifest{Base: "/out", CatalogType: "self-contained", Validate: true}

	res, err := Run(context.Background(), mio, root, m)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.CatalogType != stac.SelfContained {
		t.Errorf("result catalog type = %q", res.CatalogType)
	}

	for _, uri := range []string{"/out/root.json", "/out/a.json"} {
		if _, ok := mio.Get(uri); !ok {
			t.Errorf("missing published document at %s", uri)
		}
	}
	doc, _ := mio.Get("/out/root.json")
	if strings.Contains(string(doc), `"rel": "self"`) {
		t.Error("self-contained output carries a self link")
	}
}

func TestRunValidationStopsPublish(t *testing.T) {
	root := stac.NewCatalog("root", "") // invalid: no description
	mio := stacio.NewMemoryIO()
	m := &Manifest{Base: "/out", CatalogType: "self-contained", Validate: true}

	_, err := Run(context.Background(), mio, root, m)
	if !errors.Is(err, errors.ErrCodeValidation) {
		t.Fatalf("Run() = %v, want VALIDATION_FAILED", err)
	}
	if len(mio.URIs()) != 0 {
		t.Error("documents written despite validation failure")
	}
}
