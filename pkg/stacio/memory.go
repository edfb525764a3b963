package stacio

import (
	"context"
	"sync"

	"github.com/stacgraph/stacgraph/pkg/errors"
	"github.com/stacgraph/stacgraph/pkg/stac"
)

// MemoryIO is an in-memory document store. It counts reads per URI, which
// tests use to assert that resolution fetches each document at most once.
type MemoryIO struct {
	mu    sync.Mutex
	docs  map[string][]byte
	reads map[string]int
}

// NewMemoryIO creates an empty in-memory store.
func NewMemoryIO() *MemoryIO {
	return &MemoryIO{
		docs:  make(map[string][]byte),
		reads: make(map[string]int),
	}
}

// Put stores data under uri, replacing any previous document.
func (m *MemoryIO) Put(uri string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[uri] = append([]byte(nil), data...)
}

// Read returns the document stored under uri, or a NOT_FOUND error.
func (m *MemoryIO) Read(ctx context.Context, uri string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads[uri]++
	data, ok := m.docs[uri]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no document at %s", uri)
	}
	return append([]byte(nil), data...), nil
}

// Write stores data under uri.
func (m *MemoryIO) Write(ctx context.Context, uri string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.Put(uri, data)
	return nil
}

// ReadCount returns how many times uri has been read.
func (m *MemoryIO) ReadCount(uri string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads[uri]
}

// TotalReads returns the number of reads across all URIs.
func (m *MemoryIO) TotalReads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.reads {
		total += n
	}
	return total
}

// URIs returns the stored document URIs in unspecified order.
func (m *MemoryIO) URIs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.docs))
	for uri := range m.docs {
		out = append(out, uri)
	}
	return out
}

// Get returns the raw document stored under uri.
func (m *MemoryIO) Get(uri string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[uri]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

var _ stac.ReadWriter = (*MemoryIO)(nil)
