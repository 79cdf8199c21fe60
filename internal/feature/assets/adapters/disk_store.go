// Package adapters provides the storage implementations for the assets feature.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SeraphielSpark/contentcreator/internal/feature/assets/usecase"
)

// DiskStore keeps assets as files in one directory.
type DiskStore struct {
	dir string
}

// Compile-time check that DiskStore implements AssetStore.
var _ usecase.AssetStore = (*DiskStore)(nil)

// NewDiskStore creates the directory if needed and returns a store over it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset directory %s: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes the asset under the given name.
func (s *DiskStore) Save(_ context.Context, name string, data []byte) error {
	if err := usecase.ValidateFilename(name); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write asset %s: %w", name, err)
	}
	return nil
}

// Open returns the asset bytes, or usecase.ErrAssetNotFound.
func (s *DiskStore) Open(_ context.Context, name string) ([]byte, error) {
	if err := usecase.ValidateFilename(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, usecase.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to read asset %s: %w", name, err)
	}
	return data, nil
}

// Remove deletes the asset. A missing asset is not an error.
func (s *DiskStore) Remove(_ context.Context, name string) error {
	if err := usecase.ValidateFilename(name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove asset %s: %w", name, err)
	}
	return nil
}
