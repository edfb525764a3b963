// Package extensions provides typed accessors over the raw field maps of
// catalog objects. Extensions never inject state into the core model:
// a wrapper reads and writes the owning object's fields (item properties,
// catalog extra fields) under the extension's key prefix, and the core
// round-trips those keys untouched.
package extensions

import (
	"sort"
	"sync"

	"github.com/stacgraph/stacgraph/pkg/stac"
)

// Extension is a typed view over one object's extension fields.
type Extension interface {
	// Name returns the extension's registry name.
	Name() string
}

var (
	mu       sync.RWMutex
	registry = map[string]func(stac.Object) Extension{}
)

// Register adds an extension constructor under name, replacing any
// previous registration.
func Register(name string, ctor func(stac.Object) Extension) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = ctor
}

// Get wraps obj with the named extension. The second return value is
// false for unregistered names.
func Get(name string, obj stac.Object) (Extension, bool) {
	mu.RLock()
	ctor, ok := registry[name]
	mu.RUnlock()
	if !ok {
		return nil, false
	}
	return ctor(obj), true
}

// Names returns the registered extension names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// asFloat normalizes the numeric types JSON decoding and direct field
// writes can produce.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
