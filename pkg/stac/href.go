package stac

import (
	"path"
	"strings"

	"github.com/stacgraph/stacgraph/pkg/errors"
)

// CatalogType is a publishing convention governing which links are emitted
// absolute vs relative at save time and whether self links are included.
// It never affects in-memory link or asset targets, only serialized form.
type CatalogType string

const (
	// SelfContained catalogs emit no self links and only relative hrefs;
	// the tree can be moved anywhere as a unit.
	SelfContained CatalogType = "SELF_CONTAINED"

	// RelativePublished catalogs emit exactly one self link, absolute, on
	// the root; all other hrefs are relative.
	RelativePublished CatalogType = "RELATIVE_PUBLISHED"

	// AbsolutePublished catalogs emit an absolute self link on every
	// object and absolute hrefs everywhere.
	AbsolutePublished CatalogType = "ABSOLUTE_PUBLISHED"
)

// ParseCatalogType converts a user-supplied string (CLI flag, manifest
// value) to a CatalogType, accepting lower/mixed case and hyphens.
func ParseCatalogType(s string) (CatalogType, error) {
	switch strings.ToUpper(strings.ReplaceAll(s, "-", "_")) {
	case string(SelfContained):
		return SelfContained, nil
	case string(RelativePublished):
		return RelativePublished, nil
	case string(AbsolutePublished):
		return AbsolutePublished, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown catalog type %q", s)
	}
}

// IsAbsoluteHref reports whether href is absolute: either a scheme URI
// (http://, s3://, file://) or a rooted posix path.
func IsAbsoluteHref(href string) bool {
	return strings.Contains(href, "://") || strings.HasPrefix(href, "/")
}

// splitScheme splits a scheme URI into its scheme://host prefix and path.
// Plain paths return an empty prefix.
func splitScheme(href string) (prefix, rest string) {
	i := strings.Index(href, "://")
	if i < 0 {
		return "", href
	}
	j := strings.Index(href[i+3:], "/")
	if j < 0 {
		return href, ""
	}
	return href[:i+3+j], href[i+3+j:]
}

// MakeAbsoluteHref returns the absolute form of href. A relative href is
// resolved against the directory of base; an already absolute href is
// returned cleaned. With no base to resolve against, the href is returned
// unchanged.
func MakeAbsoluteHref(href, base string) string {
	if href == "" {
		return base
	}
	if IsAbsoluteHref(href) {
		prefix, p := splitScheme(href)
		if p == "" {
			return href
		}
		return prefix + path.Clean(p)
	}
	if base == "" {
		return href
	}
	prefix, bpath := splitScheme(base)
	return prefix + path.Join(path.Dir(bpath), href)
}

// MakeRelativeHref returns the path of href relative to the directory of
// base, prefixed with "./" when it does not climb upward. When the two
// locations share no common ancestor (different scheme or host), the
// absolute href is returned instead: relative output is a best-effort
// portability optimization, not a guarantee.
func MakeRelativeHref(href, base string) string {
	abs := MakeAbsoluteHref(href, base)
	if base == "" || !IsAbsoluteHref(base) {
		return abs
	}

	sprefix, spath := splitScheme(abs)
	bprefix, bpath := splitScheme(base)
	if sprefix != bprefix {
		return abs
	}

	sdirs := pathSegments(path.Dir(spath))
	bdirs := pathSegments(path.Dir(bpath))

	common := 0
	for common < len(sdirs) && common < len(bdirs) && sdirs[common] == bdirs[common] {
		common++
	}

	var parts []string
	for range len(bdirs) - common {
		parts = append(parts, "..")
	}
	parts = append(parts, sdirs[common:]...)
	parts = append(parts, path.Base(spath))

	rel := strings.Join(parts, "/")
	if !strings.HasPrefix(rel, "..") {
		rel = "./" + rel
	}
	return rel
}

// pathSegments splits a directory path into its non-empty segments.
func pathSegments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" || p == "." {
		return nil
	}
	return strings.Split(p, "/")
}

// defaultFileName is the id-derived filename every object is persisted
// under when hrefs are normalized.
func defaultFileName(obj Object) string {
	return obj.ID() + ".json"
}
