// Package usecase implements the business logic for the assets feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxUploadSize is the maximum accepted upload size (10MB).
	MaxUploadSize = 10 * 1024 * 1024
)

var (
	// ErrAssetNotFound is returned when no asset exists under the given filename.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrEmptyFile is returned when an upload carries no data.
	ErrEmptyFile = errors.New("file is empty")

	// ErrFileTooLarge is returned when an upload exceeds MaxUploadSize.
	ErrFileTooLarge = errors.New("file exceeds maximum size")

	// ErrInvalidFilename is returned when a requested filename fails validation.
	ErrInvalidFilename = errors.New("invalid filename")
)

// validFilename is the only shape of filename ever stored or served. Names
// are generated server-side, so anything else is a lookup we can reject
// before touching the filesystem.
var validFilename = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// extensions maps accepted upload extensions to themselves; anything else
// is stored as .jpg.
var extensions = map[string]string{
	".jpg":  ".jpg",
	".jpeg": ".jpeg",
	".png":  ".png",
	".webp": ".webp",
}

// AssetStore abstracts blob persistence for one asset directory.
// Following Go convention, the interface is defined by the consumer (usecase).
type AssetStore interface {
	// Save writes the asset under the given name. Names are write-once in
	// practice because they are collision-resistant.
	Save(ctx context.Context, name string, data []byte) error

	// Open returns the asset bytes, or ErrAssetNotFound.
	Open(ctx context.Context, name string) ([]byte, error)

	// Remove deletes the asset. Removing a missing asset is not an error.
	Remove(ctx context.Context, name string) error
}

// assetUsecase implements upload and retrieval of reference and generated assets.
type assetUsecase struct {
	uploads   AssetStore
	generated AssetStore
}

// NewAssetUsecase creates a new assetUsecase instance.
func NewAssetUsecase(uploads, generated AssetStore) *assetUsecase {
	return &assetUsecase{uploads: uploads, generated: generated}
}

// ValidateFilename rejects names that could escape the asset directory.
func ValidateFilename(name string) error {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") || !validFilename.MatchString(name) {
		return ErrInvalidFilename
	}
	return nil
}

// NewAssetName returns a collision-resistant filename preserving a sanitized
// version of the original extension.
func NewAssetName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	safe, ok := extensions[ext]
	if !ok {
		safe = ".jpg"
	}
	return uuid.NewString() + safe
}

// SaveUpload stores an uploaded reference image and returns its filename.
func (u *assetUsecase) SaveUpload(ctx context.Context, originalName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if len(data) > MaxUploadSize {
		return "", ErrFileTooLarge
	}
	name := NewAssetName(originalName)
	if err := u.uploads.Save(ctx, name, data); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return name, nil
}

// OpenUpload returns the bytes of an uploaded reference image.
func (u *assetUsecase) OpenUpload(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateFilename(name); err != nil {
		return nil, err
	}
	return u.uploads.Open(ctx, name)
}

// OpenGenerated returns the bytes of a generated image.
func (u *assetUsecase) OpenGenerated(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateFilename(name); err != nil {
		return nil, err
	}
	return u.generated.Open(ctx, name)
}
