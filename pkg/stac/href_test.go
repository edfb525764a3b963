package stac

import "testing"

func TestIsAbsoluteHref(t *testing.T) {
	tests := []struct {
		href string
		want bool
	}{
		{"https://example.com/catalog.json", true},
		{"s3://bucket/catalog.json", true},
		{"file:///data/catalog.json", true},
		{"/data/catalog.json", true},
		{"./catalog.json", false},
		{"../other/catalog.json", false},
		{"catalog.json", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsAbsoluteHref(tt.href); got != tt.want {
			t.Errorf("IsAbsoluteHref(%q) = %v, want %v", tt.href, got, tt.want)
		}
	}
}

func TestMakeAbsoluteHref(t *testing.T) {
	tests := []struct {
		name string
		href string
		base string
		want string
	}{
		{"relative against path base", "./item.json", "/data/catalog.json", "/data/item.json"},
		{"relative into subdir", "sub/item.json", "/data/catalog.json", "/data/sub/item.json"},
		{"climb upward", "../other.json", "/data/sub/catalog.json", "/data/other.json"},
		{"already absolute", "/elsewhere/item.json", "/data/catalog.json", "/elsewhere/item.json"},
		{"relative against http base", "./item.json", "https://example.com/cat/catalog.json", "https://example.com/cat/item.json"},
		{"climb against http base", "../item.json", "https://example.com/cat/sub/catalog.json", "https://example.com/cat/item.json"},
		{"absolute cleans dot segments", "/data/./sub/../item.json", "", "/data/item.json"},
		{"empty base passes through", "item.json", "", "item.json"},
		{"empty href yields base", "", "/data/catalog.json", "/data/catalog.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MakeAbsoluteHref(tt.href, tt.base); got != tt.want {
				t.Errorf("MakeAbsoluteHref(%q, %q) = %q, want %q", tt.href, tt.base, got, tt.want)
			}
		})
	}
}

func TestMakeRelativeHref(t *testing.T) {
	tests := []struct {
		name string
		href string
		base string
		want string
	}{
		{"sibling", "/data/item.json", "/data/catalog.json", "./item.json"},
		{"subdir", "/data/sub/item.json", "/data/catalog.json", "./sub/item.json"},
		{"parent dir", "/data/item.json", "/data/sub/catalog.json", "../item.json"},
		{"cousin", "/data/a/item.json", "/data/b/catalog.json", "../a/item.json"},
		{"same scheme and host", "https://example.com/data/item.json", "https://example.com/data/catalog.json", "./item.json"},
		{"different host falls back to absolute", "https://other.com/item.json", "https://example.com/catalog.json", "https://other.com/item.json"},
		{"different scheme falls back to absolute", "s3://bucket/item.json", "https://example.com/catalog.json", "s3://bucket/item.json"},
		{"no base falls back to absolute", "/data/item.json", "", "/data/item.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MakeRelativeHref(tt.href, tt.base); got != tt.want {
				t.Errorf("MakeRelativeHref(%q, %q) = %q, want %q", tt.href, tt.base, got, tt.want)
			}
		})
	}
}

func TestHrefRoundTrip(t *testing.T) {
	base := "/data/nested/catalog.json"
	hrefs := []string{
		"/data/nested/item.json",
		"/data/item.json",
		"/data/nested/deep/item.json",
		"/other/item.json",
	}

	for _, abs := range hrefs {
		rel := MakeRelativeHref(abs, base)
		if got := MakeAbsoluteHref(rel, base); got != abs {
			t.Errorf("round trip of %q via %q = %q", abs, rel, got)
		}
	}
}

func TestParseCatalogType(t *testing.T) {
	tests := []struct {
		in      string
		want    CatalogType
		wantErr bool
	}{
		{"SELF_CONTAINED", SelfContained, false},
		{"self_contained", SelfContained, false},
		{"self-contained", SelfContained, false},
		{"RELATIVE_PUBLISHED", RelativePublished, false},
		{"absolute-published", AbsolutePublished, false},
		{"published", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCatalogType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCatalogType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCatalogType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
