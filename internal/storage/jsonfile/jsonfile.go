// Package jsonfile stores each collection as a JSON array in its own file.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/mmynk/finanzas/internal/storage"
)

// Ensure Store implements storage.Backend
var _ storage.Backend = (*Store)(nil)

// Store keeps one <collection>.json file per collection inside a directory.
type Store struct {
	dir string
}

// New creates the data directory if it doesn't exist and initializes every
// missing collection file with an empty array.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{dir: dir}
	for _, name := range storage.CollectionNames {
		path := s.path(name)
		_, err := os.Stat(path)
		if err == nil {
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if err := writeFile(path, []byte("[]")); err != nil {
			return nil, fmt.Errorf("failed to initialize %s: %w", path, err)
		}
	}
	return s, nil
}

// Blob returns the file-backed blob for the named collection.
func (s *Store) Blob(name string) storage.Blob {
	return &fileBlob{path: s.path(name)}
}

// Close is a no-op; files are opened per operation.
func (s *Store) Close() error {
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

type fileBlob struct {
	path string
}

func (b *fileBlob) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

func (b *fileBlob) Write(ctx context.Context, data []byte) error {
	return writeFile(b.path, data)
}

// writeFile replaces path atomically: readers see either the old or the new
// array, never a partial write.
func writeFile(path string, data []byte) error {
	return renameio.WriteFile(path, data, 0o644)
}
