package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNoSnapshot is returned by Load when no blob has been written for a key yet.
var ErrNoSnapshot = errors.New("no snapshot for key")

// BlobStore persists named JSON blobs on the local filesystem, one file per key.
// Every Save replaces the whole blob; there is no incremental log. Writes go
// through a temp file and rename, so a crash mid-flush leaves the previous
// snapshot intact.
type BlobStore struct {
	dir string
}

// NewBlobStore creates the data directory if needed and returns a store over it.
func NewBlobStore(dir string) (*BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &BlobStore{dir: dir}, nil
}

// Load reads the blob stored under key into v. Returns ErrNoSnapshot if the
// key has never been saved.
func (s *BlobStore) Load(key string, v interface{}) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNoSnapshot
		}
		return fmt.Errorf("failed to read blob %q: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode blob %q: %w", key, err)
	}
	return nil
}

// Save writes v as the full blob for key, replacing any previous snapshot.
func (s *BlobStore) Save(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode blob %q: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for blob %q: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write blob %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close blob %q: %w", key, err)
	}

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace blob %q: %w", key, err)
	}
	return nil
}

func (s *BlobStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
