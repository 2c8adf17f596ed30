package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/visorhq/visor/host/internal/shared/types"
	"github.com/visorhq/visor/host/internal/shared/utils"
)

// FileStore implements host.Store over a directory of item files
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir, creating it if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// List implements host.Store
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage items: %w", err)
	}
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			keys = append(keys, entry.Name())
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// All implements host.Store
func (s *FileStore) All(ctx context.Context) ([]types.StorageItem, error) {
	keys, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]types.StorageItem, 0, len(keys))
	for _, key := range keys {
		value, err := s.Get(ctx, key)
		if err != nil {
			continue
		}
		items = append(items, types.StorageItem{Key: key, Value: value})
	}
	return items, nil
}

// Get implements host.Store. A missing key returns nil without error.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.itemPath(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read storage item %s: %w", key, err)
	}
	return data, nil
}

// Put implements host.Store
func (s *FileStore) Put(ctx context.Context, key string, value []byte) error {
	path, err := s.itemPath(key)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, value, 0o644); err != nil {
		return fmt.Errorf("failed to write storage item %s: %w", key, err)
	}
	return nil
}

// Delete implements host.Store
func (s *FileStore) Delete(ctx context.Context, key string) error {
	path, err := s.itemPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete storage item %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) itemPath(key string) (string, error) {
	if err := utils.ValidateName("storage key", key); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, key), nil
}
