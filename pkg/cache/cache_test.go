package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	key := "https://example.com/catalog/catalog.json"
	value := []byte(`{"type":"Catalog","id":"root"}`)

	// Miss before Set
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("expected miss before Set")
	}

	// Round-trip
	if err := c.Set(ctx, key, value, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != string(value) {
		t.Errorf("Get = %q, want %q", data, value)
	}

	// Delete
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("expected miss after Delete")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestFileCacheStoresRawDocument(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	key := "https://example.com/catalog.json"
	doc := []byte(`{"type":"Catalog","id":"root"}`)
	if err := c.Set(ctx, key, doc, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// The on-disk entry is the document itself, not an envelope.
	fc := c.(*FileCache)
	onDisk, err := os.ReadFile(fc.path(key))
	if err != nil {
		t.Fatalf("read cached file: %v", err)
	}
	if string(onDisk) != string(doc) {
		t.Errorf("cached file = %q, want raw document %q", onDisk, doc)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "short-lived", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "short-lived"); hit {
		t.Error("expected expired entry to be a miss")
	}
}

func TestFileCacheStats(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	fc := c.(*FileCache)
	s, err := fc.Stats()
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if s.Entries != 0 {
		t.Errorf("Entries = %d, want 0", s.Entries)
	}

	_ = c.Set(ctx, "a", []byte("aaa"), 0)
	_ = c.Set(ctx, "b", []byte("bbb"), 0)

	s, err = fc.Stats()
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if s.Entries != 2 {
		t.Errorf("Entries = %d, want 2", s.Entries)
	}
	if s.Bytes == 0 {
		t.Error("Bytes should be non-zero after Set")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}
