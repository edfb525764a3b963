// Package stacio provides the storage backends catalog graphs read from
// and write to: local files, HTTP endpoints, and an in-memory store for
// tests. Each backend maps its native failures onto the structured error
// codes the graph layer reports (NOT_FOUND, IO_ERROR, NETWORK_ERROR).
package stacio

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/stacgraph/stacgraph/pkg/errors"
	"github.com/stacgraph/stacgraph/pkg/stac"
)

// FileIO reads and writes catalog documents on the local filesystem.
// URIs are plain paths or file:// URLs; parent directories are created on
// write as needed.
type FileIO struct{}

// NewFileIO creates a filesystem-backed document store.
func NewFileIO() *FileIO { return &FileIO{} }

// Read returns the contents of the file at uri. A missing file is a
// NOT_FOUND error; any other failure is an IO_ERROR.
func (f *FileIO) Read(ctx context.Context, uri string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := filePath(uri)
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "no document at %s", p)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", p)
	}
	return data, nil
}

// Write stores data at uri, creating parent directories as needed.
func (f *FileIO) Write(ctx context.Context, uri string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p := filePath(uri)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create directory for %s", p)
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", p)
	}
	return nil
}

func filePath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

var _ stac.ReadWriter = (*FileIO)(nil)
