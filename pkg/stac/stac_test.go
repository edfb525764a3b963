package stac

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
)

// mapReader is the in-memory document store the tests resolve against.
// It counts reads per URI so tests can assert single-fetch behavior.
type mapReader struct {
	mu    sync.Mutex
	docs  map[string]string
	reads map[string]int
}

func newMapReader() *mapReader {
	return &mapReader{
		docs:  make(map[string]string),
		reads: make(map[string]int),
	}
}

func (m *mapReader) put(uri, doc string) { m.docs[uri] = doc }

func (m *mapReader) Read(ctx context.Context, uri string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads[uri]++
	doc, ok := m.docs[uri]
	if !ok {
		return nil, errNotFound(uri)
	}
	return []byte(doc), nil
}

func (m *mapReader) Write(ctx context.Context, uri string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[uri] = string(data)
	return nil
}

func (m *mapReader) readCount(uri string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads[uri]
}

type notFoundError string

func errNotFound(uri string) error   { return notFoundError(uri) }
func (e notFoundError) Error() string { return "no document at " + string(e) }

// parseDoc unmarshals a serialized document for structural assertions.
func parseDoc(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal document: %v", err)
	}
	return doc
}

// docLinks extracts the links array of a parsed document.
func docLinks(t *testing.T, doc map[string]any) []map[string]any {
	t.Helper()
	raw, ok := doc["links"].([]any)
	if !ok {
		t.Fatalf("document has no links array: %v", doc["links"])
	}
	out := make([]map[string]any, len(raw))
	for i, entry := range raw {
		out[i], ok = entry.(map[string]any)
		if !ok {
			t.Fatalf("link %d is not an object", i)
		}
	}
	return out
}

// linksWithRel filters a parsed links array by rel.
func linksWithRel(links []map[string]any, rel string) []map[string]any {
	var out []map[string]any
	for _, l := range links {
		if l["rel"] == rel {
			out = append(out, l)
		}
	}
	return out
}
